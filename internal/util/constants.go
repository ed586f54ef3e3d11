package util

// 存储类型
const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// MimeImage 头像只接受图片
const MimeImage = "image/"

var AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// 列表接口默认/最大返回条数
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200

	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)
