// Package snapshot compares JSON views against files under testdata/
package snapshot

import (
	"encoding/json"
	"fmt"
	"homegame-server/internal/util"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv rewrites every snapshot instead of comparing when set to "1"
const UpdateEnv = "HOMEGAME_UPDATE_SNAPSHOTS"

var (
	lock      sync.Mutex
	callCount = make(map[string]int)
)

// ValidateSnapshot compares obj, encoded as indented JSON, with the snapshot file for the calling test
// depth is the number of helper frames between the test and this call.
// Missing snapshots are written and pass.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	filename := snapshotFile(depth + 2)
	actual, err := json.MarshalIndent(obj, "", "  ")
	if !assert.NoError(t, err) {
		return
	}

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || util.Getenv(UpdateEnv, "") == "1" {
		if err := write(filename, actual); err != nil {
			t.Fatalf("could not write snapshot %s: %v", filename, err)
		}

		return
	} else if err != nil {
		t.Fatalf("could not read snapshot %s: %v", filename, err)
	}

	if !assert.Equal(t, strings.TrimSpace(string(expects)), strings.TrimSpace(string(actual)), msgAndArgs...) {
		t.Logf("snapshot %s, run with %s=1 to update", filename, UpdateEnv)
	}
}

// snapshotFile names the file after the calling function and how often it has called
func snapshotFile(skip int) string {
	pc, _, _, _ := runtime.Caller(skip)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	lock.Lock()
	call := callCount[funcName]
	callCount[funcName] = call + 1
	lock.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))
}

func write(filename string, b []byte) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(b, '\n'), 0644) // nolint:gosec
}
