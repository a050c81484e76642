package container

import "errors"

var (
	// ErrBadMagic はマジックナンバーが一致しない場合のエラー
	ErrBadMagic = errors.New("マジックナンバーが一致しません")

	// ErrUnsupportedVersion は未対応のフォーマットバージョンのエラー
	ErrUnsupportedVersion = errors.New("未対応のフォーマットバージョンです")

	// ErrNotProjectPayload はペイロードがProjectではない場合のエラー
	ErrNotProjectPayload = errors.New("ペイロードがProjectではありません")

	// ErrTruncated はデータが途中で切れている場合のエラー
	ErrTruncated = errors.New("データが途中で切れています")

	// ErrTrailingData はレコードの後に余分なデータがある場合のエラー
	ErrTrailingData = errors.New("レコードの後に余分なデータがあります")
)
