// Package optional 提供三態欄位：未提供、提供為 null、提供為值。
package optional

// Field 區分「欄位未出現在 patch 中」與「欄位被明確設定」(值可能為 nil)。
// 零值即為 NotSet。
type Field[T any] struct {
	value T
	set   bool
}

func NotSet[T any]() Field[T] {
	return Field[T]{}
}

func Set[T any](value T) Field[T] {
	return Field[T]{value: value, set: true}
}

// FromPtr 將 nil 指標視為 NotSet。
func FromPtr[T any](value *T) Field[T] {
	if value == nil {
		return NotSet[T]()
	}
	return Set(*value)
}

func (f Field[T]) IsSet() bool {
	return f.set
}

// Value 在未設定時 panic，屬於呼叫端的程式錯誤。
func (f Field[T]) Value() T {
	if !f.set {
		panic("optional: Value called on a field that is not set")
	}
	return f.value
}

func (f Field[T]) IfSet(action func(T)) {
	if f.set {
		action(f.value)
	}
}

// ValueOr 在未設定時回傳 fallback。
func (f Field[T]) ValueOr(fallback T) T {
	if !f.set {
		return fallback
	}
	return f.value
}
