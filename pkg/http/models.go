package http

type ServerConfig struct {
	ReadHeaderTimeoutSec int
}

type RouterConfig struct {
	TimeoutSec     int
	// TrustProxy takes the client address from X-Forwarded-For or
	// X-Real-IP. Only enable it behind a proxy that sets those headers.
	TrustProxy     bool
	DisableCors    bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}
