package oto

import "errors"

var (
	// ErrUnknownField は未知のフィールド名が指定された場合のエラー
	ErrUnknownField = errors.New("未知のフィールド名です")

	// ErrReadSetting は原音設定ファイルの読み込みに失敗した場合のエラー
	ErrReadSetting = errors.New("原音設定ファイルの読み込みに失敗しました")

	// ErrWriteSetting は原音設定ファイルの書き込みに失敗した場合のエラー
	ErrWriteSetting = errors.New("原音設定ファイルの書き込みに失敗しました")

	// ErrEncodingConversion は文字コード変換に失敗した場合のエラー
	ErrEncodingConversion = errors.New("文字コード変換に失敗しました")
)
