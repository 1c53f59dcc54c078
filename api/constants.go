package api

import "time"

const (
	// DefaultMaxFileSize is the default maximum upload size (50MB)
	DefaultMaxFileSize = 50 * 1024 * 1024

	// DefaultEngineTimeout bounds a single engine run
	DefaultEngineTimeout = 2 * time.Minute

	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755

	// multipartOverhead allows for form fields and part headers on top of the file
	multipartOverhead = 1 << 20

	// maxMultipartMemory is the part of a form kept in memory, the rest spills to disk
	maxMultipartMemory = 32 << 20

	// maxErrorMessageLength caps engine error text returned to clients
	maxErrorMessageLength = 200
)
