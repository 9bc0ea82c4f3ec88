package httpapi

// maxBodyBytes bounds JSON request bodies.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes configures the JSON body limit; non-positive restores 1 MiB.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// maxUploadBytes bounds multipart uploads on /audio/transcriptions.
var maxUploadBytes int64 = 25 << 20

// SetMaxUploadBytes configures the upload limit; non-positive restores 25 MiB.
func SetMaxUploadBytes(n int64) {
	if n <= 0 {
		maxUploadBytes = 25 << 20
		return
	}
	maxUploadBytes = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
}

// uiDir is the frontend asset directory served under /ui/. Empty disables it.
var uiDir string

// SetUIDir configures the static frontend directory.
func SetUIDir(dir string) { uiDir = dir }

// swaggerEnabled mounts /swagger/* when true.
var swaggerEnabled bool

// SetSwagger toggles the swagger UI.
func SetSwagger(enabled bool) { swaggerEnabled = enabled }
