// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

// DefaultPages is the built-in entity list: the major characters,
// locations, and realms the knowledge graph is seeded from. A config
// file can override it.
var DefaultPages = []string{
	// Major characters.
	"Gandalf", "Frodo Baggins", "Aragorn II", "Legolas", "Gimli",
	"Bilbo Baggins", "Samwise Gamgee", "Meriadoc Brandybuck", "Peregrin Took",
	"Boromir", "Faramir", "Galadriel", "Elrond", "Arwen",
	"Sauron", "Saruman", "Gollum", "Théoden", "Éowyn", "Éomer",

	"Thorin", "Denethor II", "Celeborn", "Haldir", "Treebeard",
	"Tom Bombadil", "Goldberry", "Glorfindel", "Beregond",

	// Villains and creatures.
	"Witch-king", "Shelob", "Gothmog", "Lurtz", "Azog",

	// Major locations.
	"Rivendell", "Lothlórien", "Minas Tirith", "Edoras", "Isengard",
	"Mordor", "Mount Doom", "The Shire", "Bag End", "Moria",
	"Helm's Deep", "Fangorn", "Weathertop", "Mirkwood", "Erebor",

	// Realms and regions.
	"Gondor", "Rohan", "Arnor", "Eriador", "Rhovanion",

	"Bree", "Orthanc", "Barad-dûr", "Osgiliath", "Pelennor Fields",
	"Argonath", "Cirith Ungol", "Dead Marshes", "Emyn Muil",
}
