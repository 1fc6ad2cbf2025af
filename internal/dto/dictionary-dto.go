package dto

type DictionaryDTO struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
}
