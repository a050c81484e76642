// Package config はcactisynthの設定管理を行います
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

const Version = "0.1.0"

const (
	// DefaultExtension はプロジェクトコンテナの拡張子（Ookamitai!に由来）
	DefaultExtension = ".okmt"

	// DefaultSampleExtension はボイスバンクの音声サンプルの拡張子
	DefaultSampleExtension = ".wav"

	// DefaultLanguage は既定の言語タグ
	DefaultLanguage = "en"
)

// Config はアプリケーションの設定を保持します
//
// 設定はグローバルに共有せず、必要とする各エントリポイントへ
// 明示的に値として渡します
type Config struct {
	USTPath         string
	VoiceBankPath   string
	OutputPath      string
	Extension       string
	SampleExtension string
	Language        string
	SaveProject     bool
	DebugMode       bool
	ShowVersion     bool
}

// Default は既定値のConfigを返します
func Default() *Config {
	return &Config{
		OutputPath:      "output",
		Extension:       DefaultExtension,
		SampleExtension: DefaultSampleExtension,
		Language:        DefaultLanguage,
	}
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := Default()

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "  --ust string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to a UST project file (e.g. song.ust)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -u string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to a UST project file (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --voicebank string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to a voicebank root directory")
		fmt.Fprintln(flag.CommandLine.Output(), "  -b string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to a voicebank root directory (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -o string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput directory for saved projects (default \"output\")")
		fmt.Fprintln(flag.CommandLine.Output(), "  --save")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tsave the loaded project as a container file")
		fmt.Fprintln(flag.CommandLine.Output(), "  -s\tsave the loaded project as a container file (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --debug")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tenable debug output")
		fmt.Fprintln(flag.CommandLine.Output(), "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --version")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow version information")
		fmt.Fprintln(flag.CommandLine.Output(), "  -v\tshow version information (shorthand)")
	}

	// USTファイルフラグ
	flag.StringVar(&config.USTPath, "ust", "", "path to a UST project file (e.g. song.ust)")
	flag.StringVar(&config.USTPath, "u", "", "path to a UST project file (shorthand)")

	// ボイスバンクフラグ
	flag.StringVar(&config.VoiceBankPath, "voicebank", "", "path to a voicebank root directory")
	flag.StringVar(&config.VoiceBankPath, "b", "", "path to a voicebank root directory (shorthand)")

	// 出力ディレクトリ
	flag.StringVar(&config.OutputPath, "o", "output", "output directory for saved projects")

	// 保存モード
	flag.BoolVar(&config.SaveProject, "save", false, "save the loaded project as a container file")
	flag.BoolVar(&config.SaveProject, "s", false, "save the loaded project as a container file (shorthand)")

	// デバッグモード
	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("cactisynth version %s\n", Version)
		os.Exit(0)
	}
}

// SetupLogger はデバッグモードに応じてログレベルを設定します
func SetupLogger(debugMode bool) {
	if debugMode {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
