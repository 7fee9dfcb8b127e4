package config

import "os"

type DynamoConfig struct {
	// TableName is empty when tasks are kept in memory.
	TableName  string
	TtlMinutes int
}

func GetDynamoConfig() (*DynamoConfig, error) {
	ttl, err := getEnvInt("DYNAMO_TTL_MINUTES", 1440)
	if err != nil {
		return nil, err
	}

	return &DynamoConfig{
		TableName:  os.Getenv("DYNAMO_TABLE_NAME"),
		TtlMinutes: ttl,
	}, nil
}
