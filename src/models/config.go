package models

// MConfig Structure
type MConfig struct {
	Name     string         `yaml:"name"`
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	GrpcHost string         `yaml:"grpc_host"`
	GrpcPort int            `yaml:"grpc_port"`
	Storage  MStorageConfig `yaml:"storage"`
	Network  MNetworkConfig `yaml:"network"`
	Data     MDataConfig    `yaml:"data"`
	Policy   MPolicyConfig  `yaml:"policy"`
}

// MStorageConfig selects where the input tables are read from.
// DBType is one of csv, sqlite, postgres, mysql.
type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
}

// MDataConfig names the input tables. For csv storage a table reference is a
// file path or an http(s) URL, for SQL storage it is a table name.
type MDataConfig struct {
	RawTable               string   `yaml:"raw_table"`
	CleanTable             string   `yaml:"clean_table"`
	CityTable              string   `yaml:"city_table"`
	Categories             []string `yaml:"categories"`
	MonthLabels            []string `yaml:"month_labels,omitempty"`
	PreviewRows            int      `yaml:"preview_rows"`
	RefreshIntervalSeconds int      `yaml:"refresh_interval_seconds"`
	LoadTimeoutSeconds     int      `yaml:"load_timeout_seconds"`
	CalendarMIC            string   `yaml:"calendar_mic"`
}

// MPolicyConfig drives the classification rules.
type MPolicyConfig struct {
	HighPricedProducts    []string `yaml:"high_priced_products"`
	ReferenceCity         string   `yaml:"reference_city"`
	LowCostPriceThreshold float64  `yaml:"low_cost_price_threshold"`
	TopCount              int      `yaml:"top_count"`
	BottomCount           int      `yaml:"bottom_count"`
}
