package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&PublisherModel{},
		&BookModel{},
		&MemberModel{},
		&LoanModel{},
		&PhotoModel{},
	)
}

// AuthorModel GORM作者模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/author/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. 不使用gorm.DeletedAt软删除：注销走Active标记，删除是真删除
type AuthorModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;size:100;not null;comment:姓名"`
	Active    bool      `gorm:"index;default:true;comment:是否在册"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// PublisherModel GORM出版社模型
type PublisherModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;size:100;not null;comment:名称"`
	Active    bool      `gorm:"index;default:true;comment:是否在册"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PublisherModel) TableName() string {
	return "publishers"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,防止重复登记
// 2. 三个副本计数列维持 total = lent + available 不变量,
//    修改必须走行锁事务
// 3. AuthorID/PublisherID有索引,支撑级联遍历
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	ISBN            int64     `gorm:"uniqueIndex;not null;comment:ISBN号"`
	Title           string    `gorm:"index;size:200;not null;comment:书名"`
	Year            int       `gorm:"not null;comment:出版年份"`
	Description     string    `gorm:"size:255;not null;comment:描述"`
	TotalCopies     int       `gorm:"not null;default:0;comment:副本总数"`
	LentCopies      int       `gorm:"not null;default:0;comment:在借副本数"`
	AvailableCopies int       `gorm:"not null;default:0;comment:可借副本数"`
	Active          bool      `gorm:"index;default:true;comment:是否在册"`
	AuthorID        uint      `gorm:"index;not null;comment:作者ID"`
	PublisherID     uint      `gorm:"index;not null;comment:出版社ID"`
	CoverPhotoID    uint      `gorm:"default:0;comment:封面图片ID(0表示无封面)"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// MemberModel GORM会员模型
type MemberModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string    `gorm:"size:50;not null;comment:姓名"`
	Active    bool      `gorm:"index;default:true;comment:是否启用"`
	PhotoID   uint      `gorm:"default:0;comment:头像图片ID(0表示无头像)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (MemberModel) TableName() string {
	return "members"
}

// LoanModel GORM借阅模型
// 设计说明:
// 1. LoanNo是业务主键,有唯一索引
// 2. (member_id, active)复合索引支撑借阅上限统计
// 3. (book_id, active)复合索引支撑按书统计在借数
type LoanModel struct {
	ID         uint       `gorm:"primaryKey"`
	LoanNo     string     `gorm:"uniqueIndex;size:32;not null;comment:借阅单号"`
	BookID     uint       `gorm:"index:idx_book_active;not null;comment:图书ID"`
	MemberID   uint       `gorm:"index:idx_member_active;not null;comment:会员ID"`
	LoanDate   time.Time  `gorm:"not null;comment:借出日期"`
	DueDate    time.Time  `gorm:"not null;comment:应还日期"`
	ReturnedAt *time.Time `gorm:"comment:实际归还时间(NULL表示未归还)"`
	Active     bool       `gorm:"index:idx_book_active;index:idx_member_active;default:true;comment:是否在借"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}

// PhotoModel GORM图片模型
// 图片字节直接落库,MEDIUMBLOB上限16MB足够封面/头像场景
type PhotoModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;comment:原始文件名"`
	Mime      string    `gorm:"size:100;comment:MIME类型"`
	Content   []byte    `gorm:"type:mediumblob;comment:图片字节"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PhotoModel) TableName() string {
	return "photos"
}
