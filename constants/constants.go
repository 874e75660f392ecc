package constants

import "os"

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetOutDir is where JSON reports are written.
func GetOutDir() string {
	return getEnvOrDefault("OUT_DIR", "./out")
}

func GetDBPath() string {
	return getEnvOrDefault("DB_PATH", "patternmetrics.sqlite3")
}

func GetDynamoEndpoint() string {
	return getEnvOrDefault("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getEnvOrDefault("DYNAMODB_REGION", "localhost")
}

func GetDynamoTable() string {
	return getEnvOrDefault("DYNAMODB_TABLE", "patternmetrics-reports")
}

func GetPort() string {
	return getEnvOrDefault("PORT", "8080")
}

// Extensions recognized when gathering inputs.
var (
	PatternExtensions = []string{".txt"}
	MidiExtensions    = []string{".mid", ".midi"}
)

// ShowVectorsLimit caps how many TEC vectors inspect prints per pattern.
const ShowVectorsLimit = 8
