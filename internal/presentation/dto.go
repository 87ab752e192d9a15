package presentation

import (
	"github.com/zjrosen/rollcall/internal/domain/person"
	"github.com/zjrosen/rollcall/internal/domain/song"
)

// PersonDTO represents a person for presentation
type PersonDTO struct {
	Name    string `json:"name"`
	Age     string `json:"age,omitempty"`
	Company string `json:"company,omitempty"`
}

// SongDTO represents a song for presentation
type SongDTO struct {
	Name   string `json:"name"`
	Artist string `json:"artist,omitempty"`
}

// FromPeople converts people to DTOs, keeping order
func FromPeople(people []*person.Person) []PersonDTO {
	dtos := make([]PersonDTO, len(people))
	for i, p := range people {
		dtos[i] = PersonDTO{Name: p.Name(), Age: p.Age(), Company: p.Company()}
	}
	return dtos
}

// FromSongs converts songs to DTOs, keeping order
func FromSongs(songs []*song.Song) []SongDTO {
	dtos := make([]SongDTO, len(songs))
	for i, s := range songs {
		dtos[i] = SongDTO{Name: s.Name(), Artist: s.ArtistName()}
	}
	return dtos
}
