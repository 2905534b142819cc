package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=banking_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultJWTSecret = "banking-ledger-dev-secret"
const defaultFeeRate = "0.01"
const defaultOverdraftFloor = "-1000"
const defaultBankCapital = "10000000"
const defaultMaxLoanAmount = "50000"

type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	HTTPAddr      string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	FeeRate        decimal.Decimal
	OverdraftFloor decimal.Decimal
	BankCapital    decimal.Decimal
	MaxLoanAmount  decimal.Decimal

	// StrictTransferConversion switches the transfer posting to the
	// corrected variant: the overdraft check uses the converted
	// fee-inclusive debit, and the destination is credited the
	// converted amount instead of the nominal one.
	StrictTransferConversion bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
	}

	accessTTL, err := durationEnv("ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}

	refreshTTL, err := durationEnv("REFRESH_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	feeRate, err := decimalEnv("FEE_RATE", defaultFeeRate)
	if err != nil {
		return Config{}, err
	}

	overdraftFloor, err := decimalEnv("OVERDRAFT_FLOOR", defaultOverdraftFloor)
	if err != nil {
		return Config{}, err
	}

	bankCapital, err := decimalEnv("BANK_CAPITAL", defaultBankCapital)
	if err != nil {
		return Config{}, err
	}

	maxLoanAmount, err := decimalEnv("MAX_LOAN_AMOUNT", defaultMaxLoanAmount)
	if err != nil {
		return Config{}, err
	}

	strictTransferConversion := strings.EqualFold(strings.TrimSpace(os.Getenv("STRICT_TRANSFER_CONVERSION")), "true")

	return Config{
		DatabaseDSN:              normalizeConnectionString(conn),
		MigrationsDir:            migrationsDir,
		HTTPAddr:                 httpAddr,
		JWTSecret:                jwtSecret,
		AccessTokenTTL:           accessTTL,
		RefreshTokenTTL:          refreshTTL,
		FeeRate:                  feeRate,
		OverdraftFloor:           overdraftFloor,
		BankCapital:              bankCapital,
		MaxLoanAmount:            maxLoanAmount,
		StrictTransferConversion: strictTransferConversion,
	}, nil
}

func decimalEnv(name string, fallback string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		raw = fallback
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s: %w", name, err)
	}

	return value, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}

	return value, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
