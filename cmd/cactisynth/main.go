package main

import (
	"fmt"
	"os"

	"github.com/ookamitai/go-cactisynth/internal/synth/app"
	"github.com/ookamitai/go-cactisynth/internal/synth/config"
)

func main() {
	// コマンドライン引数の解析
	cfg := config.ParseFlags()

	// バージョン表示の処理
	config.HandleVersion(cfg.ShowVersion)

	// ログレベルの設定
	config.SetupLogger(cfg.DebugMode)

	// アプリケーションの実行
	application := app.New(cfg)
	if err := run(application, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}
}

// run は指定されたUSTとボイスバンクを読み込み、概要を表示します
func run(application *app.App, cfg *config.Config) error {
	if cfg.USTPath == "" && cfg.VoiceBankPath == "" {
		return fmt.Errorf("読み込む対象がありません（--ust または --voicebank を指定してください）")
	}

	if cfg.USTPath != "" {
		project, err := application.LoadUST(cfg.USTPath)
		if err != nil {
			return err
		}
		fmt.Printf("プロジェクト: %s (tempo=%g, tracks=%d, notes=%d)\n",
			project.Name, project.Tempo, project.Tracks, len(project.Notes))

		if cfg.SaveProject {
			path, err := application.SaveProject("")
			if err != nil {
				return err
			}
			fmt.Printf("保存先: %s\n", path)
		}
	}

	if cfg.VoiceBankPath != "" {
		vb, err := application.OpenVoiceBank(cfg.VoiceBankPath)
		if err != nil {
			return err
		}
		fmt.Printf("ボイスバンク: %s by %s (oto=%d, samples=%d)\n",
			vb.Name, vb.Author, vb.OtoCount, vb.FileCount)
	}

	return nil
}
