package app

import "errors"

var (
	// ErrLoadUST はUSTファイルの読み込みに失敗した場合のエラー
	ErrLoadUST = errors.New("USTファイルの読み込みに失敗しました")

	// ErrOpenVoiceBank はボイスバンクの読み込みに失敗した場合のエラー
	ErrOpenVoiceBank = errors.New("ボイスバンクの読み込みに失敗しました")

	// ErrNoProject はプロジェクトが読み込まれていない場合のエラー
	ErrNoProject = errors.New("プロジェクトが読み込まれていません")

	// ErrNoVoiceBank はボイスバンクが読み込まれていない場合のエラー
	ErrNoVoiceBank = errors.New("ボイスバンクが読み込まれていません")

	// ErrNoRenderer はレンダラが設定されていない場合のエラー
	ErrNoRenderer = errors.New("レンダラが設定されていません")

	// ErrEstimatePitch はピッチ推定に失敗した場合のエラー
	ErrEstimatePitch = errors.New("ピッチ推定に失敗しました")

	// ErrResynthesize は再合成に失敗した場合のエラー
	ErrResynthesize = errors.New("再合成に失敗しました")
)
