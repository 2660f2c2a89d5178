package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// 数据库驱动
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

const (
	MinPasswordLength  = 4
	DefaultMaxPerTrack = 50
)

// gin 上下文键
const (
	ContextUserKey   = "user"
	ContextConfigKey = "config"
)
