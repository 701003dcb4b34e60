package thinking

import (
	"os"
	"testing"

	"github.com/zhubert/thinkprompt/internal/logger"
)

func TestMain(m *testing.M) {
	// Keep test runs out of the shared debug log
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}
