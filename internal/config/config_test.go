package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
database:
  driver: postgres
  host: db.local
jwt:
  secret: dev-secret
storage:
  type: oss
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 72*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "dev", cfg.Auth.Mode)
	assert.Equal(t, 10, cfg.AI.HistoryLimit)
	assert.Equal(t, 200, cfg.Gamification.XPPerLevel)
	assert.Equal(t, time.UTC, cfg.Gamification.Location())
	assert.Equal(t, dir, cfg.ConfigDir)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: mysql
  host: 127.0.0.1
storage:
  type: oss
`)
	t.Setenv("DATABASE_HOST", "mysql.internal")
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("PORT", "7000")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "mysql.internal", cfg.Database.Host)
	assert.Equal(t, "sk-from-env", cfg.AI.APIKey)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]string{
		"未知数据库驱动": `
database:
  driver: oracle
storage:
  type: oss
`,
		"release 模式密钥过短": `
server:
  mode: release
jwt:
  secret: short
auth:
  mode: oauth
storage:
  type: oss
`,
		"release 模式禁止 dev 登录": `
server:
  mode: release
jwt:
  secret: 0123456789abcdef0123456789abcdef
session:
  secret: 0123456789abcdef0123456789abcdef
auth:
  mode: dev
storage:
  type: oss
`,
		"非法时区": `
gamification:
  timezone: Mars/Olympus
storage:
  type: oss
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
