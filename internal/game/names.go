package game

import "math/rand"

// animalNames is the pool of default player names, in Spanish to match
// the game's voice.
var animalNames = []string{
	"Perro", "Gato", "León", "Tigre", "Elefante",
	"Jirafa", "Cebra", "Hipopótamo", "Rinoceronte", "Cocodrilo",
	"Serpiente", "Águila", "Halcón", "Búho", "Loro",
	"Pingüino", "Delfín", "Ballena", "Tiburón", "Pulpo",
	"Medusa", "Estrella", "Cangrejo", "Langosta", "Tortuga",
	"Rana", "Sapo", "Salamandra", "Camaleón", "Iguana",
	"Koala", "Canguro", "Oso", "Panda", "Lobo",
	"Zorro", "Conejo", "Liebre", "Ardilla", "Castor",
	"Mapache", "Tejón", "Nutria", "Foca", "Morsa",
	"Mono", "Gorila", "Chimpancé", "Orangután", "Lémur",
	"Murciélago", "Rata", "Ratón", "Hamster", "Cobaya",
	"Erizo", "Topo", "Comadreja", "Hurón", "Marta",
	"Caballo", "Burro", "Bisonte", "Búfalo", "Ciervo",
	"Vaca", "Toro", "Cerdo", "Oveja", "Cabra",
	"Llama", "Alpaca", "Camello", "Dromedario", "Alce",
	"Reno", "Antílope", "Gacela", "Impala", "Pájaro",
	"Golondrina", "Canario", "Ruiseñor", "Cuervo", "Gaviota",
	"Pelícano", "Flamenco", "Cisne", "Pato", "Ganso",
	"Gallina", "Gallo", "Pavo", "Avestruz", "Colibrí",
	"Tucán", "Guacamayo", "Cacatúa", "Kiwi",
}

// RandomPlayerName picks a random animal name for an anonymous player.
func RandomPlayerName() string {
	return animalNames[rand.Intn(len(animalNames))]
}
