package entities

// Genre представляет музыкальный жанр из справочника.
type Genre struct {
	ID       string
	Name     string
	Hardness int
}
