package dto

// NameRequest 作者/出版社登记与改名请求
type NameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AuthorResponse 作者响应
type AuthorResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// PublisherResponse 出版社响应
type PublisherResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// BookRequest 图书登记/修改请求
// 副本数下限在应用层校验(修改时新总数不能低于在借数)
type BookRequest struct {
	ISBN        int64  `json:"isbn" binding:"required,gt=0"`
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Year        int    `json:"year" binding:"required,gt=0"`
	Description string `json:"description" binding:"required,max=255"`
	TotalCopies int    `json:"total_copies" binding:"gte=0"`
	AuthorID    uint   `json:"author_id" binding:"required"`
	PublisherID uint   `json:"publisher_id" binding:"required"`
}

// BookResponse 图书响应
type BookResponse struct {
	ID              uint   `json:"id"`
	ISBN            int64  `json:"isbn"`
	Title           string `json:"title"`
	Year            int    `json:"year"`
	Description     string `json:"description"`
	TotalCopies     int    `json:"total_copies"`
	LentCopies      int    `json:"lent_copies"`
	AvailableCopies int    `json:"available_copies"`
	Active          bool   `json:"active"`
	AuthorID        uint   `json:"author_id"`
	PublisherID     uint   `json:"publisher_id"`
	CoverPhotoID    uint   `json:"cover_photo_id"`
}
