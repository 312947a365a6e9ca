// Package configs provides configuration structures and utilities for the
// Doce Mila storefront service. It offers mechanisms for loading, validating,
// and saving configuration from JSON and YAML files, and defines the structure
// that controls all aspects of the server.
//
// Package configs 提供Doce Mila店铺服务的配置结构和工具。
// 它提供从JSON和YAML文件加载、验证和保存配置的机制，
// 并定义了控制服务器所有方面的结构。
package configs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the storefront service.
// It contains all settings needed to run the server, organized into logical
// sections for the different components.
//
// Config 表示店铺服务的完整配置。
// 它包含运行服务器所需的所有设置，按不同组件的逻辑部分进行组织。
type Config struct {
	// Server contains the HTTP listener settings
	// Server 包含HTTP监听器设置
	Server ServerConfig `json:"server" yaml:"server"`

	// Catalog controls how the product reference data is loaded and normalized
	// Catalog 控制产品参考数据的加载和规范化方式
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Auth configures the simulated authentication flow and session storage
	// Auth 配置模拟认证流程和会话存储
	Auth AuthConfig `json:"auth" yaml:"auth"`

	// Contact configures the external contact-form relay
	// Contact 配置外部联系表单转发
	Contact ContactConfig `json:"contact" yaml:"contact"`

	// Log configures the logging behavior
	// Log 配置日志行为
	Log LogConfig `json:"log" yaml:"log"`

	// Extensions configures optional features like hot reloading
	// Extensions 配置可选功能，如热重载
	Extensions ExtensionsConfig `json:"extensions" yaml:"extensions"`

	// Extra allows for custom configuration options
	// Extra 允许自定义配置选项
	Extra map[string]interface{} `json:"extra" yaml:"extra"`
}

// ServerConfig contains settings for the HTTP server.
// ServerConfig 包含HTTP服务器的设置。
type ServerConfig struct {
	// Port is the TCP port the server listens on
	// Port 是服务器监听的TCP端口
	Port int `json:"port" yaml:"port"`

	// Mode is the Gin run mode ("debug", "release", "test")
	// Mode 是Gin运行模式（"debug"、"release"、"test"）
	Mode string `json:"mode" yaml:"mode"`

	// ReadTimeout is the maximum duration for reading a request
	// ReadTimeout 是读取请求的最大持续时间
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out a response
	// WriteTimeout 是响应超时前的最大持续时间
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// CatalogConfig contains settings for the product reference data.
// CatalogConfig 包含产品参考数据的设置。
type CatalogConfig struct {
	// ProductsFile is the path to the YAML/JSON file holding the product set
	// ProductsFile 是存放产品集合的YAML/JSON文件路径
	ProductsFile string `json:"products_file" yaml:"products_file"`

	// DefaultCategory is assigned to products that declare no category
	// DefaultCategory 分配给未声明类别的产品
	DefaultCategory string `json:"default_category" yaml:"default_category"`

	// DefaultRating is assigned to products that declare no rating
	// DefaultRating 分配给未声明评分的产品
	DefaultRating float64 `json:"default_rating" yaml:"default_rating"`

	// ReviewCountMin and ReviewCountMax bound the defaulted review count.
	// The defaulted value is derived from the product id so it is stable
	// across filter runs and restarts.
	//
	// ReviewCountMin 和 ReviewCountMax 限定默认评论数的范围。
	// 默认值由产品id派生，因此在过滤运行和重启之间保持稳定。
	ReviewCountMin int `json:"review_count_min" yaml:"review_count_min"`
	ReviewCountMax int `json:"review_count_max" yaml:"review_count_max"`

	// DefaultImage is used for products without an image path
	// DefaultImage 用于没有图片路径的产品
	DefaultImage string `json:"default_image" yaml:"default_image"`

	// PriceFloor is the minimum upper bound reported for the price range
	// control, so the range never degenerates even if all products are cheap
	//
	// PriceFloor 是价格范围控件报告的最小上限，
	// 即使所有产品都很便宜，范围也不会退化
	PriceFloor float64 `json:"price_floor" yaml:"price_floor"`

	// Watch enables reloading the product file when it changes on disk
	// Watch 启用在产品文件变化时重新加载
	Watch bool `json:"watch" yaml:"watch"`
}

// AuthConfig contains settings for the simulated authentication flow.
// AuthConfig 包含模拟认证流程的设置。
type AuthConfig struct {
	// SimulatedLatency is the artificial delay applied to login/register,
	// mimicking a remote identity provider
	//
	// SimulatedLatency 是应用于登录/注册的人为延迟，模拟远程身份提供者
	SimulatedLatency time.Duration `json:"simulated_latency" yaml:"simulated_latency"`

	// SessionTTL is how long issued sessions are retained
	// SessionTTL 是已签发会话的保留时间
	SessionTTL time.Duration `json:"session_ttl" yaml:"session_ttl"`

	// Store selects the session backend ("memory", "redis")
	// Store 选择会话后端（"memory"、"redis"）
	Store string `json:"store" yaml:"store"`

	// RedisAddr and RedisDB configure the Redis session backend
	// RedisAddr 和 RedisDB 配置Redis会话后端
	RedisAddr string `json:"redis_addr" yaml:"redis_addr"`
	RedisDB   int    `json:"redis_db" yaml:"redis_db"`
}

// ContactConfig contains settings for the contact-form relay.
// ContactConfig 包含联系表单转发的设置。
type ContactConfig struct {
	// Endpoint is the external API that receives contact messages
	// Endpoint 是接收联系消息的外部API
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// WhatsAppNumber is the number used to build wa.me deep links
	// WhatsAppNumber 是用于构建wa.me深层链接的号码
	WhatsAppNumber string `json:"whatsapp_number" yaml:"whatsapp_number"`

	// Timeout bounds the outbound relay call
	// Timeout 限制出站转发调用的时间
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LogConfig contains settings for logging.
// LogConfig 包含日志记录的设置。
type LogConfig struct {
	// Level sets the minimum log level ("debug", "info", "warn", "error")
	// Level 设置最低日志级别（"debug"、"info"、"warn"、"error"）
	Level string `json:"level" yaml:"level"`

	// Format specifies the log format ("text", "json")
	// Format 指定日志格式（"text"、"json"）
	Format string `json:"format" yaml:"format"`

	// Output determines where logs are written ("stdout", "stderr", "file")
	// Output 确定日志写入的位置（"stdout"、"stderr"、"file"）
	Output string `json:"output" yaml:"output"`

	// FilePath is the path to the log file when Output is "file"
	// FilePath 是当Output为"file"时的日志文件路径
	FilePath string `json:"file_path" yaml:"file_path"`
}

// ExtensionsConfig contains settings for extensions.
// ExtensionsConfig 包含扩展的设置。
type ExtensionsConfig struct {
	// HotReload contains settings for dynamic configuration reloading
	// HotReload 包含动态配置重新加载的设置
	HotReload HotReloadConfig `json:"hot_reload" yaml:"hot_reload"`
}

// HotReloadConfig contains settings for hot reloading.
// HotReloadConfig 包含热重载的设置。
type HotReloadConfig struct {
	// Enable determines whether hot reloading is active
	// Enable 确定是否启用热重载
	Enable bool `json:"enable" yaml:"enable"`

	// WatchInterval is how often to check for configuration changes
	// WatchInterval 是检查配置更改的频率
	WatchInterval time.Duration `json:"watch_interval" yaml:"watch_interval"`
}

// DefaultConfig returns a new Config with default values.
// This provides a starting point with reasonable defaults for all settings,
// which can then be customized as needed.
//
// DefaultConfig 返回具有默认值的新Config。
// 这为所有设置提供了具有合理默认值的起点，然后可以根据需要进行自定义。
//
// Returns:
//   - *Config: A new configuration instance with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			Mode:         "release",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			ProductsFile:    "configs/products.yaml",
			DefaultCategory: "Doces",
			DefaultRating:   4,
			ReviewCountMin:  10,
			ReviewCountMax:  59,
			DefaultImage:    "/images/Logo.jpg",
			PriceFloor:      50,
			Watch:           false,
		},
		Auth: AuthConfig{
			SimulatedLatency: 1500 * time.Millisecond,
			SessionTTL:       24 * time.Hour,
			Store:            "memory",
			RedisAddr:        "localhost:6379",
			RedisDB:          0,
		},
		Contact: ContactConfig{
			Endpoint:       "https://teste-java-1.onrender.com/api/contato",
			WhatsAppNumber: "5521999472392",
			Timeout:        10 * time.Second,
		},
		Log: LogConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "/var/log/docemila.log",
		},
		Extensions: ExtensionsConfig{
			HotReload: HotReloadConfig{
				Enable:        false,
				WatchInterval: 30 * time.Second,
			},
		},
		Extra: make(map[string]interface{}),
	}
}

// LoadFromFile loads configuration from a file.
// It supports both YAML and JSON formats, automatically detecting the format
// based on the file extension.
//
// LoadFromFile 从文件加载配置。
// 它支持YAML和JSON格式，根据文件扩展名自动检测格式。
//
// Parameters:
//   - filename: Path to the configuration file
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
func LoadFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	config := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(file).Decode(config)
	case ".json":
		err = json.NewDecoder(file).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// LoadFromReader loads configuration from an io.Reader.
// This allows loading configuration from sources other than files,
// such as network streams or in-memory data.
//
// LoadFromReader 从io.Reader加载配置。
// 这允许从文件以外的源加载配置，如网络流或内存中的数据。
//
// Parameters:
//   - r: The reader providing the configuration data
//   - format: The format of the data ("json", "yaml", or "yml")
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	config := DefaultConfig()
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(config)
	case "json":
		err = json.NewDecoder(r).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
// It supports both YAML and JSON formats, automatically selecting the format
// based on the file extension.
//
// SaveToFile 将配置保存到文件。
// 它支持YAML和JSON格式，根据文件扩展名自动选择格式。
//
// Parameters:
//   - filename: Path where the configuration will be saved
//
// Returns:
//   - error: An error if saving fails
func (c *Config) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		err = encoder.Encode(c)
	case ".json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(c)
	default:
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	return nil
}

// Validate validates the configuration.
// It checks that all settings have valid values and that there are no
// conflicts or inconsistencies.
//
// Validate 验证配置。
// 它检查所有设置是否具有有效值，并且没有冲突或不一致。
//
// Returns:
//   - error: An error describing the validation failure, or nil if valid
func (c *Config) Validate() error {
	// Validate server settings
	// 验证服务器设置
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
		// Valid modes
		// 有效模式
	default:
		return fmt.Errorf("server.mode must be one of: debug, release, test")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}

	// Validate catalog settings
	// 验证目录设置
	if c.Catalog.ProductsFile == "" {
		return fmt.Errorf("catalog.products_file must be specified")
	}
	if c.Catalog.DefaultRating < 0 || c.Catalog.DefaultRating > 5 {
		return fmt.Errorf("catalog.default_rating must be between 0 and 5")
	}
	if c.Catalog.ReviewCountMin < 0 {
		return fmt.Errorf("catalog.review_count_min must be non-negative")
	}
	if c.Catalog.ReviewCountMax < c.Catalog.ReviewCountMin {
		return fmt.Errorf("catalog.review_count_max must be >= catalog.review_count_min")
	}
	if c.Catalog.PriceFloor < 0 {
		return fmt.Errorf("catalog.price_floor must be non-negative")
	}

	// Validate auth settings
	// 验证认证设置
	if c.Auth.SimulatedLatency < 0 {
		return fmt.Errorf("auth.simulated_latency must be non-negative")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}
	switch c.Auth.Store {
	case "memory", "redis":
		// Valid backends
		// 有效后端
	default:
		return fmt.Errorf("auth.store must be one of: memory, redis")
	}
	if c.Auth.Store == "redis" && c.Auth.RedisAddr == "" {
		return fmt.Errorf("auth.redis_addr must be specified when auth.store is 'redis'")
	}

	// Validate contact settings
	// 验证联系设置
	if c.Contact.Endpoint != "" && !strings.HasPrefix(c.Contact.Endpoint, "http") {
		return fmt.Errorf("contact.endpoint must be an http(s) URL")
	}
	if c.Contact.Timeout <= 0 {
		return fmt.Errorf("contact.timeout must be positive")
	}

	// Validate log settings
	// 验证日志设置
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
		// 有效级别
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
		// Valid formats
		// 有效格式
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}
	switch c.Log.Output {
	case "stdout", "stderr", "file":
		// Valid outputs
		// 有效输出
	default:
		return fmt.Errorf("log.output must be one of: stdout, stderr, file")
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path must be specified when log.output is 'file'")
	}

	// Validate extension settings
	// 验证扩展设置
	if c.Extensions.HotReload.Enable && c.Extensions.HotReload.WatchInterval < time.Second {
		return fmt.Errorf("extensions.hot_reload.watch_interval must be at least 1 second")
	}

	return nil
}
