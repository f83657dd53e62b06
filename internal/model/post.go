package model

import "time"

// Post 帖子按文档的思路存：avatar 和 likes 都是 JSON 列，
// 读写整行，靠行级原子性保证并发安全 (不做跨行事务)
type Post struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	Avatar      *Avatar   `gorm:"serializer:json;type:json" json:"avatar"`
	CreatedBy   string    `gorm:"type:varchar(36);not null;index:idx_posts_creator,priority:1" json:"created_by"`
	CreatedAt   time.Time `gorm:"index:idx_posts_creator,priority:2" json:"created_at"`

	// 创建时从 User 冷拷贝过来的冗余字段，之后改昵称/头像不会回写 (产品决定)
	CreatorName   string `gorm:"type:varchar(20);not null" json:"creator_name"`
	CreatorAvatar string `gorm:"type:varchar(512);not null" json:"creator_avatar"`

	// 点赞用户 ID 集合，每个 ID 至多出现一次 (Service 层保证)
	Likes []string `gorm:"serializer:json;type:json" json:"likes"`
}

// TableName 强制指定表名
func (Post) TableName() string {
	return "posts"
}

// Liked 判断某个用户是否已点赞
func (p *Post) Liked(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
