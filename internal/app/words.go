package app

import "math/rand"

// SeedWords are the candidate starting words for the semantic chain.
// One is drawn at random every time a game starts.
var SeedWords = []string{
	"Futuro", "Passado", "Tempo", "Viagem", "Sonho",
	"Cidade", "Floresta", "Oceano", "Montanha", "Deserto",
	"Fogo", "Gelo", "Chuva", "Vento", "Trovão",
	"Música", "Silêncio", "Palavra", "Livro", "Carta",
	"Carro", "Trem", "Avião", "Barco", "Estrada",
	"Amizade", "Coragem", "Medo", "Saudade", "Alegria",
	"Escola", "Trabalho", "Festa", "Jogo", "Prêmio",
	"Lua", "Sol", "Estrela", "Planeta", "Universo",
}

// RandomSeedWord returns a random seed word for a new game
func RandomSeedWord() string {
	return SeedWords[rand.Intn(len(SeedWords))]
}
