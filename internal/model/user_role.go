package model

// UserRole 由主平台签发的 JWT 携带，本服务只做校验
type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)
