// validate_profiles checks render profile YAML files.
//
// Usage:
//
//	go run ./cmd/validate_profiles [file.yaml ...]
//
// Without arguments every file under data/profiles is checked.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decker502/fireworks/pkg/config"
)

func main() {
	files := os.Args[1:]
	if len(files) == 0 {
		matches, err := filepath.Glob(filepath.Join(config.ProfileDir, "*.yaml"))
		if err != nil {
			fmt.Printf("❌ 查找配置文件失败: %v\n", err)
			os.Exit(1)
		}
		files = matches
	}

	if len(files) == 0 {
		fmt.Printf("❌ 没有找到配置文件\n")
		os.Exit(1)
	}

	failed := 0
	for _, file := range files {
		p, err := config.LoadProfile(file)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", file, err)
			failed++
			continue
		}
		fmt.Printf("✅ %s: %s %dx%d@%d, %d 帧, 重复 %d 次\n",
			file, p.Name, p.Width, p.Height, p.FPS, p.TotalFrames(), p.Repeat)
	}

	if failed > 0 {
		fmt.Printf("❌ 有 %d 个配置文件无效\n", failed)
		os.Exit(1)
	}
}
