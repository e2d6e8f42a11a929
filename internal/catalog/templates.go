package catalog

// templates is the static monster table. Loaded once, never mutated.
var templates = []Template{
	{ID: 1, Name: "Emberfang", Attack: 35, Defense: 15, MaxHP: 100, ImageURL: "/cards/emberfang.png"},
	{ID: 2, Name: "Tidecaller", Attack: 40, Defense: 20, MaxHP: 80, ImageURL: "/cards/tidecaller.png"},
	{ID: 3, Name: "Stonehide", Attack: 25, Defense: 35, MaxHP: 120, ImageURL: "/cards/stonehide.png"},
	{ID: 4, Name: "Galeclaw", Attack: 45, Defense: 10, MaxHP: 70, ImageURL: "/cards/galeclaw.png"},
	{ID: 5, Name: "Mossback", Attack: 20, Defense: 30, MaxHP: 140, ImageURL: "/cards/mossback.png"},
	{ID: 6, Name: "Voltwhisker", Attack: 38, Defense: 18, MaxHP: 90, ImageURL: "/cards/voltwhisker.png"},
	{ID: 7, Name: "Frostmaw", Attack: 32, Defense: 25, MaxHP: 105, ImageURL: "/cards/frostmaw.png"},
	{ID: 8, Name: "Duskwing", Attack: 42, Defense: 12, MaxHP: 75, ImageURL: "/cards/duskwing.png"},
	{ID: 9, Name: "Ironsnout", Attack: 28, Defense: 32, MaxHP: 115, ImageURL: "/cards/ironsnout.png"},
	{ID: 10, Name: "Thornspine", Attack: 30, Defense: 28, MaxHP: 110, ImageURL: "/cards/thornspine.png"},
	{ID: 11, Name: "Cinderwisp", Attack: 44, Defense: 8, MaxHP: 65, ImageURL: "/cards/cinderwisp.png"},
	{ID: 12, Name: "Mirelurker", Attack: 26, Defense: 27, MaxHP: 125, ImageURL: "/cards/mirelurker.png"},
	{ID: 13, Name: "Skyrender", Attack: 41, Defense: 16, MaxHP: 85, ImageURL: "/cards/skyrender.png"},
	{ID: 14, Name: "Bouldergut", Attack: 22, Defense: 38, MaxHP: 135, ImageURL: "/cards/bouldergut.png"},
	{ID: 15, Name: "Riptooth", Attack: 39, Defense: 19, MaxHP: 88, ImageURL: "/cards/riptooth.png"},
	{ID: 16, Name: "Glimmerhorn", Attack: 33, Defense: 24, MaxHP: 98, ImageURL: "/cards/glimmerhorn.png"},
	{ID: 17, Name: "Ashtalon", Attack: 43, Defense: 14, MaxHP: 78, ImageURL: "/cards/ashtalon.png"},
	{ID: 18, Name: "Deeproot", Attack: 24, Defense: 34, MaxHP: 130, ImageURL: "/cards/deeproot.png"},
	{ID: 19, Name: "Stormherald", Attack: 37, Defense: 21, MaxHP: 92, ImageURL: "/cards/stormherald.png"},
	{ID: 20, Name: "Nightprowler", Attack: 40, Defense: 17, MaxHP: 82, ImageURL: "/cards/nightprowler.png"},
	{ID: 21, Name: "Crystallisk", Attack: 29, Defense: 31, MaxHP: 112, ImageURL: "/cards/crystallisk.png"},
	{ID: 22, Name: "Pyreshell", Attack: 31, Defense: 29, MaxHP: 108, ImageURL: "/cards/pyreshell.png"},
	{ID: 23, Name: "Vortexfin", Attack: 36, Defense: 22, MaxHP: 95, ImageURL: "/cards/vortexfin.png"},
	{ID: 24, Name: "Grimclaw", Attack: 34, Defense: 23, MaxHP: 102, ImageURL: "/cards/grimclaw.png"},
	{ID: 25, Name: "Sunscale", Attack: 27, Defense: 33, MaxHP: 118, ImageURL: "/cards/sunscale.png"},
}
