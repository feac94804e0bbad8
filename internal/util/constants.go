package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeJSON = "application/json"
)

// Redis key 前缀
const (
	IntegrityReportKeyPrefix = "integrity_report:"
)
