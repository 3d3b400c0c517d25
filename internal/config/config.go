package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	CatalogPath    string
	AliasesFile    string
	MatchThreshold float64
	Scorer         string
	ColumnGaps     bool

	OCRLangs    []string
	OCRBinarize int // порог бинаризации 1..255, 0: выключено

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() Config {
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         getint("PORT", 8082),
		AllowOrigins: splitList(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/partmatch.log"),
		MaxUploadMB:  getint("MAX_UPLOAD_MB", 20),

		CatalogPath:    getenv("CATALOG_PATH", "mydata.xlsx"),
		AliasesFile:    getenv("ALIASES_FILE", ""),
		MatchThreshold: getfloat("MATCH_THRESHOLD", 0.40),
		Scorer:         getenv("SCORER", "dice"),
		ColumnGaps:     getbool("COLUMN_GAPS", false),

		OCRLangs:    splitList(getenv("OCR_LANGS", "eng,kor")),
		OCRBinarize: clamp(getint("OCR_BINARIZE", 200), 0, 255),

		RateLimitRPS:   getfloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getint("RATE_LIMIT_BURST", 10),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// MaxUploadBytes: лимит на сам файл изображения.
func (c Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) * 1024 * 1024 }

// запас на multipart-обвязку (границы, заголовки частей, прочие поля формы)
const multipartHeadroom = 1 << 20

// MaxBodyBytes: лимит на тело запроса целиком, 0 без лимита.
func (c Config) MaxBodyBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return c.MaxUploadBytes() + multipartHeadroom
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(getenv(k, "")))
	if err != nil {
		return def
	}
	return i
}

func getfloat(k string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(getenv(k, "")), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func getbool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// "eng+kor" и "eng,kor": одно и то же
func splitList(s string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '+' }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
