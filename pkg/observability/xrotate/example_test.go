package xrotate_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/xrid/pkg/observability/xrotate"
)

func ExampleNewLumberjack() {
	dir, err := os.MkdirTemp("", "xrotate-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	r, err := xrotate.NewLumberjack(filepath.Join(dir, "logs", "app.log"),
		xrotate.WithMaxSize(10),
		xrotate.WithMaxBackups(3),
		xrotate.WithCompress(false),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, _ = r.Write([]byte("runtime_id=api:q3k9x0ab msg=started\n"))
	fmt.Println(r.Close())
	// Output:
	// <nil>
}
