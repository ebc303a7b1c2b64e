package stack

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Config is the complete, immutable input of one synthesis pass. Every
// value is resolved before synthesis starts; nothing is discovered on the
// fly mid-pass.
type Config struct {
	StackName string `env:"DELIVERY_STACK_NAME" envDefault:"DeliveryApi"`

	Region    string `env:"DELIVERY_REGION"`
	AccountID string `env:"DELIVERY_ACCOUNT_ID"`

	// Database connectivity. The proxy endpoint serves regular traffic;
	// the writer endpoint is only handed to the bootstrap function.
	DBEndpoint      string `env:"DELIVERY_DB_ENDPOINT"`
	DBProxyEndpoint string `env:"DELIVERY_DB_PROXY_ENDPOINT"`
	DBPort          int    `env:"DELIVERY_DB_PORT" envDefault:"5432"`
	DBRegion        string `env:"DELIVERY_DB_REGION"`
	DBUser          string `env:"DELIVERY_DB_USER"`

	DBAdminSecretName string `env:"DELIVERY_DB_ADMIN_SECRET_NAME"`
	DBAdminSecretArn  string `env:"DELIVERY_DB_ADMIN_SECRET_ARN"`
	DBUserSecretName  string `env:"DELIVERY_DB_USER_SECRET_NAME"`
	DBUserSecretArn   string `env:"DELIVERY_DB_USER_SECRET_ARN"`

	// AlertEmail is optional; empty means no alarm subscription.
	AlertEmail string `env:"DELIVERY_ALERT_EMAIL"`

	SubnetIDs       []string `env:"DELIVERY_SUBNET_IDS" envSeparator:","`
	SecurityGroupID string   `env:"DELIVERY_SECURITY_GROUP_ID"`

	// Function packaging inputs.
	SourceDir            string `env:"DELIVERY_SOURCE_DIR"`
	PrebuiltArchive      string `env:"DELIVERY_PREBUILT_ARCHIVE"`
	CustomRuntimeArchive string `env:"DELIVERY_CUSTOM_RUNTIME_ARCHIVE"`

	APISchemaPath string `env:"DELIVERY_API_SCHEMA"`
	SQLScriptPath string `env:"DELIVERY_SQL_SCRIPT"`

	StageName        string `env:"DELIVERY_STAGE_NAME" envDefault:"Prod"`
	HandlerNamespace string `env:"DELIVERY_HANDLER_NAMESPACE" envDefault:"com.ilmlf.delivery.api.handlers"`

	// LocalBuildCommand and LocalBuildArtifact override the source build;
	// useful when the archive is produced by something other than the
	// default gradle invocation.
	LocalBuildCommand  []string `env:"DELIVERY_LOCAL_BUILD_COMMAND" envSeparator:" "`
	LocalBuildArtifact string   `env:"DELIVERY_LOCAL_BUILD_ARTIFACT"`
}

// Load reads configuration from DELIVERY_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing environment")
	}
	if cfg.DBRegion == "" {
		cfg.DBRegion = cfg.Region
	}
	return cfg, nil
}

// Validate checks that every required input is present. Synthesis refuses
// to start on a partial configuration rather than failing mid-pass.
func (c Config) Validate() error {
	var missing []string

	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	require("region", c.Region)
	require("account id", c.AccountID)
	require("db endpoint", c.DBEndpoint)
	require("db proxy endpoint", c.DBProxyEndpoint)
	require("db user", c.DBUser)
	require("db admin secret name", c.DBAdminSecretName)
	require("db admin secret arn", c.DBAdminSecretArn)
	require("db user secret name", c.DBUserSecretName)
	require("db user secret arn", c.DBUserSecretArn)
	require("security group id", c.SecurityGroupID)
	require("source dir", c.SourceDir)
	require("api schema path", c.APISchemaPath)
	require("sql script path", c.SQLScriptPath)

	if c.DBPort <= 0 {
		missing = append(missing, "db port")
	}
	if len(c.SubnetIDs) == 0 {
		missing = append(missing, "subnet ids")
	}

	if len(missing) > 0 {
		return errors.Newf("incomplete configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
