package settings

// Config is the process configuration of batchd.
type Config struct {
	Server        Server
	Logger        Logger
	Batching      Batching
	IDs           IDs
	Sink          Sink
	Kafka         Kafka
	Redis         Redis
	Elasticsearch Elasticsearch
	MongoDB       MongoDB
}

// Server is the configuration for the HTTP server
type Server struct {
	Mode            string `env:"BATCHD_SERVER_MODE,default=release" validate:"oneof=debug release test"`
	Host            string `env:"BATCHD_SERVER_HOST,default=0.0.0.0"`
	Port            int    `env:"BATCHD_SERVER_PORT,default=8080" validate:"gte=1,lte=65535"`
	ShutdownTimeout int    `env:"BATCHD_SERVER_SHUTDOWN_TIMEOUT,default=10" validate:"gte=1"` // Seconds
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `env:"BATCHD_LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	FileLogName string `env:"BATCHD_LOG_FILE"`
	MaxBackups  int    `env:"BATCHD_LOG_MAX_BACKUPS,default=5" validate:"gte=0"`
	MaxAge      int    `env:"BATCHD_LOG_MAX_AGE,default=30" validate:"gte=0"`   // Days
	MaxSize     int    `env:"BATCHD_LOG_MAX_SIZE,default=100" validate:"gte=0"` // Megabytes
	Compress    bool   `env:"BATCHD_LOG_COMPRESS,default=false"`
}

// Batching is the configuration for the batch collector
type Batching struct {
	Name                       string  `env:"BATCHD_BATCH_NAME,default=batchd"`
	MaxNumberOfItems           int     `env:"BATCHD_BATCH_MAX_ITEMS,default=100" validate:"gte=1"`
	MaxTimeBetweenPostsSeconds float64 `env:"BATCHD_BATCH_MAX_WAIT_SECONDS,default=10" validate:"gt=0"`
	MinTimeBetweenPostsSeconds float64 `env:"BATCHD_BATCH_MIN_SPACING_SECONDS,default=-1"` // Negative means unset
	TickIntervalMs             int     `env:"BATCHD_BATCH_TICK_INTERVAL_MS,default=16" validate:"gte=1"`
}

// IDs configures the snowflake ids assigned to ingested items
type IDs struct {
	WorkerID  int64 `env:"BATCHD_ID_WORKER,default=1" validate:"gte=0"`
	Epoch     int64 `env:"BATCHD_ID_EPOCH,default=1704067200000"` // Unix milliseconds
	NodeBits  uint8 `env:"BATCHD_ID_NODE_BITS,default=10"`
	StepBits  uint8 `env:"BATCHD_ID_STEP_BITS,default=12"`
	TotalBits uint8 `env:"BATCHD_ID_TOTAL_BITS,default=63" validate:"lte=63"`
}

// Sink selects where batches are delivered
type Sink struct {
	Kind    string `env:"BATCHD_SINK,default=log" validate:"oneof=log kafka redis elasticsearch mongodb"`
	Timeout int    `env:"BATCHD_SINK_TIMEOUT,default=5" validate:"gte=1"` // Seconds per batch
}

// Kafka is the configuration for Kafka
type Kafka struct {
	Brokers         []string `env:"BATCHD_KAFKA_BROKERS,default=localhost:9092"`
	Topic           string   `env:"BATCHD_KAFKA_TOPIC,default=batchd.items"`
	MaxMessageBytes int      `env:"BATCHD_KAFKA_MAX_MESSAGE_BYTES,default=1000000"` // Bytes
	Timeout         int      `env:"BATCHD_KAFKA_TIMEOUT,default=10"`                // Seconds
	MaxRetries      int      `env:"BATCHD_KAFKA_MAX_RETRIES,default=3"`             // Number of retries
	RetryBackoff    int      `env:"BATCHD_KAFKA_RETRY_BACKOFF,default=100"`         // Milliseconds
}

// Redis is the configuration for Redis
type Redis struct {
	Host            string `env:"BATCHD_REDIS_HOST,default=localhost"`
	Port            int    `env:"BATCHD_REDIS_PORT,default=6379"`
	Password        string `env:"BATCHD_REDIS_PASSWORD"`
	Database        int    `env:"BATCHD_REDIS_DATABASE,default=0"`
	PoolSize        int    `env:"BATCHD_REDIS_POOL_SIZE"`
	MinIdleConns    int    `env:"BATCHD_REDIS_MIN_IDLE_CONNS"`
	PoolTimeout     int    `env:"BATCHD_REDIS_POOL_TIMEOUT"`  // Seconds
	DialTimeout     int    `env:"BATCHD_REDIS_DIAL_TIMEOUT"`  // Seconds
	ReadTimeout     int    `env:"BATCHD_REDIS_READ_TIMEOUT"`  // Seconds
	WriteTimeout    int    `env:"BATCHD_REDIS_WRITE_TIMEOUT"` // Seconds
	MaxRetries      int    `env:"BATCHD_REDIS_MAX_RETRIES"`
	MaxRetryBackoff int    `env:"BATCHD_REDIS_MAX_RETRY_BACKOFF"` // Milliseconds
	MinRetryBackoff int    `env:"BATCHD_REDIS_MIN_RETRY_BACKOFF"` // Milliseconds
	Key             string `env:"BATCHD_REDIS_KEY,default=batchd:items"`
	MaxLen          int64  `env:"BATCHD_REDIS_MAX_LEN,default=0"` // 0 keeps every item
}

// Elasticsearch is the configuration for Elasticsearch
type Elasticsearch struct {
	Addresses []string `env:"BATCHD_ELASTICSEARCH_ADDRESSES,default=http://localhost:9200"`
	Username  string   `env:"BATCHD_ELASTICSEARCH_USERNAME"`
	Password  string   `env:"BATCHD_ELASTICSEARCH_PASSWORD"`
	Index     string   `env:"BATCHD_ELASTICSEARCH_INDEX,default=batchd-items"`
}

// MongoDB is the configuration for MongoDB
type MongoDB struct {
	Host            string `env:"BATCHD_MONGODB_HOST,default=localhost"`
	Username        string `env:"BATCHD_MONGODB_USERNAME"`
	Password        string `env:"BATCHD_MONGODB_PASSWORD"`
	Database        string `env:"BATCHD_MONGODB_DATABASE,default=batchd"`
	Collection      string `env:"BATCHD_MONGODB_COLLECTION,default=items"`
	MaxPoolSize     uint64 `env:"BATCHD_MONGODB_MAX_POOL_SIZE,default=50"`
	MinPoolSize     uint64 `env:"BATCHD_MONGODB_MIN_POOL_SIZE,default=5"`
	MaxConnIdleTime uint64 `env:"BATCHD_MONGODB_MAX_CONN_IDLE_TIME,default=60"` // Seconds
	Port            int    `env:"BATCHD_MONGODB_PORT,default=27017"`
	Timeout         int    `env:"BATCHD_MONGODB_TIMEOUT,default=10"` // Seconds
}
