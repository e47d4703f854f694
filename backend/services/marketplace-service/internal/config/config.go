package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	// Database
	DBUrl string

	// Auth
	JWTSecret []byte

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string

	// Twilio / SendGrid
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string
	SendGridAPIKey   string
	SendGridFrom     string

	// Optional integrations; empty disables the adapter.
	OpenAIAPIKey string
	GMapsAPIKey  string
	AMQPUrl      string

	// Redis
	RedisAddr     string
	RedisPassword string

	// MinIO
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Feature flags
	LDFlag_CORSHighSecurity    bool
	LDFlag_SeedDbWithTestData  bool
	LDFlag_SendgridSandboxMode bool
	LDFlag_ListingCacheEnabled bool
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second
	defaultAppName      = "marketplace-service"
)

// build-time overrides
var (
	AppName             string
	LDServerContextKey  = "marketplace-service"
	LDServerContextKind = "service"
)

func init() {
	if AppName == "" {
		AppName = defaultAppName
	}
}

// FlagSource resolves boolean feature flags.
type FlagSource interface {
	BoolFlag(key string, def bool) bool
	Close()
}

func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appPort := envOr("APP_PORT", "8080")
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		utils.Logger.Fatal("JWT_SECRET env var is missing")
	}
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		utils.Logger.Fatal("STRIPE_SECRET_KEY env var is missing")
	}
	stripeWebhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if stripeWebhookSecret == "" {
		utils.Logger.Fatal("STRIPE_WEBHOOK_SECRET env var is missing")
	}

	sgFrom := envOr("SENDGRID_FROM_EMAIL", "no-reply@girhasetu.in")
	if !utils.IsValidEmail(sgFrom) {
		utils.Logger.Fatalf("SENDGRID_FROM_EMAIL %q is not a valid address", sgFrom)
	}
	twilioFrom := os.Getenv("TWILIO_FROM_PHONE")
	if twilioFrom != "" && !utils.IsE164(twilioFrom) {
		utils.Logger.Fatalf("TWILIO_FROM_PHONE %q is not E.164", twilioFrom)
	}

	flags := newFlagSource(os.Getenv("LD_SDK_KEY"))
	defer flags.Close()

	corsHighSecurity := flags.BoolFlag("cors_high_security", false)
	seedDb := flags.BoolFlag("seed_db_with_test_data", false)
	sgSandbox := flags.BoolFlag("sendgrid_sandbox_mode", false)
	cacheEnabled := flags.BoolFlag("listing_cache_enabled", true)
	utils.Logger.Debugf("flags: cors_high_security=%t seed_db_with_test_data=%t sendgrid_sandbox_mode=%t listing_cache_enabled=%t",
		corsHighSecurity, seedDb, sgSandbox, cacheEnabled)

	return &Config{
		OrganizationName:           OrganizationName,
		AppName:                    AppName,
		AppPort:                    appPort,
		AppUrl:                     appUrl,
		DBUrl:                      dbURL,
		JWTSecret:                  []byte(jwtSecret),
		StripeSecretKey:            stripeKey,
		StripeWebhookSecret:        stripeWebhookSecret,
		TwilioAccountSID:           os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:            os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromPhone:            twilioFrom,
		SendGridAPIKey:             os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:               sgFrom,
		OpenAIAPIKey:               os.Getenv("OPENAI_API_KEY"),
		GMapsAPIKey:                os.Getenv("GMAPS_API_KEY"),
		AMQPUrl:                    os.Getenv("AMQP_URL"),
		RedisAddr:                  os.Getenv("REDIS_ADDR"),
		RedisPassword:              os.Getenv("REDIS_PASSWORD"),
		MinioEndpoint:              os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:             os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:             os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:                envOr("MINIO_BUCKET", "flat-images"),
		MinioUseSSL:                envBool("MINIO_USE_SSL", false),
		LDFlag_CORSHighSecurity:    corsHighSecurity,
		LDFlag_SeedDbWithTestData:  seedDb,
		LDFlag_SendgridSandboxMode: sgSandbox,
		LDFlag_ListingCacheEnabled: cacheEnabled,
	}
}

func (c *Config) Close() {}

func newFlagSource(sdkKey string) FlagSource {
	if sdkKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set; reading feature flags from FLAG_* env vars")
		return envFlags{}
	}

	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	return &ldFlags{
		client: ldClient,
		ctx:    ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey),
	}
}

type ldFlags struct {
	client *ld.LDClient
	ctx    ldcontext.Context
}

func (f *ldFlags) BoolFlag(key string, def bool) bool {
	v, err := f.client.BoolVariation(key, f.ctx, def)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", key)
	}
	return v
}

func (f *ldFlags) Close() { _ = f.client.Close() }

// envFlags maps flag "seed_db_with_test_data" to FLAG_SEED_DB_WITH_TEST_DATA.
type envFlags struct{}

func (envFlags) BoolFlag(key string, def bool) bool {
	return envBool("FLAG_"+strings.ToUpper(key), def)
}

func (envFlags) Close() {}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Warnf("Invalid boolean for %s=%q, using %t", key, v, def)
		return def
	}
	return b
}
