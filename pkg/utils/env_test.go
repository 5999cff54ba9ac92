package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("DAO_TEST_STR", "value")
	t.Setenv("DAO_TEST_INT", "12")
	t.Setenv("DAO_TEST_BAD_INT", "twelve")
	t.Setenv("DAO_TEST_BOOL", "false")
	t.Setenv("DAO_TEST_DUR", "250ms")
	t.Setenv("DAO_TEST_LIST", " http://a:1317 ,,http://b:1317/ ")

	assert.Equal(t, "value", Env("DAO_TEST_STR", "def"))
	assert.Equal(t, "def", Env("DAO_TEST_MISSING", "def"))
	assert.Equal(t, 12, EnvInt("DAO_TEST_INT", 3))
	assert.Equal(t, 3, EnvInt("DAO_TEST_BAD_INT", 3))
	assert.False(t, EnvBool("DAO_TEST_BOOL", true))
	assert.True(t, EnvBool("DAO_TEST_MISSING", true))
	assert.Equal(t, 250*time.Millisecond, EnvDuration("DAO_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, EnvDuration("DAO_TEST_MISSING", time.Second))
	assert.Equal(t, []string{"http://a:1317", "http://b:1317/"}, EnvList("DAO_TEST_LIST"))
	assert.Nil(t, EnvList("DAO_TEST_MISSING"))
}

func TestDedup(t *testing.T) {
	in := []string{"http://a:1317/", "http://b:1317", "http://a:1317"}
	assert.Equal(t, []string{"http://a:1317", "http://b:1317"}, Dedup(in))
}
