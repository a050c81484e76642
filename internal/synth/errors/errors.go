// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrFileNotFound はファイルが見つからない場合のエラー
	ErrFileNotFound = errors.New("ファイルが見つかりません")

	// ErrIndexOutOfRange はインデックスが範囲外の場合のエラー
	ErrIndexOutOfRange = errors.New("インデックスが範囲外です")

	// ErrNotValidProject は有効なプロジェクトファイルではない場合のエラー
	ErrNotValidProject = errors.New("有効なプロジェクトファイルではありません")

	// ErrNoChunks は認識できるチャンクが存在しない場合のエラー
	ErrNoChunks = errors.New("認識できるチャンクがありません")

	// ErrParseFailure はデータの解析に失敗した場合のエラー
	ErrParseFailure = errors.New("データの解析に失敗しました")

	// ErrPrecondition は操作の前提条件に違反している場合のエラー
	ErrPrecondition = errors.New("前提条件に違反しています")
)

// ParseError は解析関連のエラー
type ParseError struct {
	File string // ファイル名
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%sの解析エラー: %v", e.File, e.Err)
	}
	return fmt.Sprintf("解析エラー: %v", e.Err)
}

// Unwrap は元のエラーを返します
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError は新しいParseErrorを作成します
func NewParseError(file string, err error) *ParseError {
	return &ParseError{
		File: file,
		Err:  err,
	}
}

// ContainerError はプロジェクトコンテナ関連のエラー
type ContainerError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ContainerError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ContainerError) Unwrap() error {
	return e.Err
}

// NewContainerError は新しいContainerErrorを作成します
func NewContainerError(op, path string, err error) *ContainerError {
	return &ContainerError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// NotFoundError は対象が見つからない場合のエラー
type NotFoundError struct {
	What string // 見つからなかった対象
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %v", e.What, e.Err)
}

// Unwrap は元のエラーを返します
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NewNotFoundError は新しいNotFoundErrorを作成します
func NewNotFoundError(what string, err error) *NotFoundError {
	return &NotFoundError{
		What: what,
		Err:  err,
	}
}

// PreconditionError は前提条件違反のエラー
type PreconditionError struct {
	Op     string // 実行しようとした操作
	Detail string // 違反の内容
}

// Error はエラーメッセージを返します
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// Unwrap は元のエラーを返します
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// NewPreconditionError は新しいPreconditionErrorを作成します
func NewPreconditionError(op, detail string) *PreconditionError {
	return &PreconditionError{
		Op:     op,
		Detail: detail,
	}
}
