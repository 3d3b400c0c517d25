package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HOST", "PORT", "ALLOW_ORIGINS", "MAX_UPLOAD_MB", "MATCH_THRESHOLD", "SCORER", "COLUMN_GAPS", "OCR_LANGS", "OCR_BINARIZE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes())
	assert.Equal(t, int64(21<<20), cfg.MaxBodyBytes())
	assert.Zero(t, Config{}.MaxBodyBytes())
	assert.Equal(t, 0.40, cfg.MatchThreshold)
	assert.Equal(t, "dice", cfg.Scorer)
	assert.False(t, cfg.ColumnGaps)
	assert.Equal(t, []string{"eng", "kor"}, cfg.OCRLangs)
	assert.Equal(t, 200, cfg.OCRBinarize)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOW_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("MATCH_THRESHOLD", "0.55")
	t.Setenv("COLUMN_GAPS", "yes")
	t.Setenv("OCR_LANGS", "eng+kor+jpn")
	t.Setenv("OCR_BINARIZE", "900")
	t.Setenv("MAX_UPLOAD_MB", "oops")

	cfg := Load()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowOrigins)
	assert.Equal(t, 0.55, cfg.MatchThreshold)
	assert.True(t, cfg.ColumnGaps)
	assert.Equal(t, []string{"eng", "kor", "jpn"}, cfg.OCRLangs)
	assert.Equal(t, 255, cfg.OCRBinarize)
	assert.Equal(t, 20, cfg.MaxUploadMB, "неверное число -> значение по умолчанию")
}

func TestMatchOptions(t *testing.T) {
	dir := t.TempDir()
	aliases := filepath.Join(dir, "aliases.json")
	require.NoError(t, os.WriteFile(aliases, []byte(`{"LW": "LW (LOCK WASHER)"}`), 0o644))

	cfg := Config{MatchThreshold: 0.6, Scorer: "damerau", ColumnGaps: true, AliasesFile: aliases}
	opt, err := cfg.MatchOptions()
	require.NoError(t, err)
	assert.Equal(t, 0.6, opt.Threshold)
	assert.True(t, opt.ColumnGaps)
	assert.Equal(t, "LW (LOCK WASHER)", opt.Aliases["LW"])
	assert.InDelta(t, 0.5, opt.Scorer("AB", "BA"), 1e-9)

	// порог вне (0..1]: остаётся по умолчанию
	opt, err = Config{MatchThreshold: 40, Scorer: "dice"}.MatchOptions()
	require.NoError(t, err)
	assert.Equal(t, 0.40, opt.Threshold)

	_, err = Config{Scorer: "cosine"}.MatchOptions()
	assert.Error(t, err)

	_, err = Config{Scorer: "dice", AliasesFile: filepath.Join(dir, "nope.json")}.MatchOptions()
	assert.Error(t, err)
}
