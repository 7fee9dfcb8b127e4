package config

type ServerConfig struct {
	Port          string
	JwksURL       string
	LogLevel      string
	StubProviders bool
}

func GetServerConfig() (*ServerConfig, error) {
	stub, err := getEnvBool("STUB_PROVIDERS", false)
	if err != nil {
		return nil, err
	}
	return &ServerConfig{
		Port:          getEnv("PORT", "8080"),
		JwksURL:       getEnv("JWKS_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StubProviders: stub,
	}, nil
}
