package element

// table holds covalent radii from Cordero et al., Dalton Trans. 2008, 2832
// (sp3 carbon, low-spin metals) and conventional maximum valences.
var table = []Element{
	{1, "H", "hydrogen", 1.008, 0.31, 1},
	{2, "He", "helium", 4.0026, 0.28, 0},
	{3, "Li", "lithium", 6.94, 1.28, 1},
	{4, "Be", "beryllium", 9.0122, 0.96, 2},
	{5, "B", "boron", 10.81, 0.84, 4},
	{6, "C", "carbon", 12.011, 0.76, 4},
	{7, "N", "nitrogen", 14.007, 0.71, 4},
	{8, "O", "oxygen", 15.999, 0.66, 2},
	{9, "F", "fluorine", 18.998, 0.57, 1},
	{10, "Ne", "neon", 20.180, 0.58, 0},
	{11, "Na", "sodium", 22.990, 1.66, 1},
	{12, "Mg", "magnesium", 24.305, 1.41, 2},
	{13, "Al", "aluminium", 26.982, 1.21, 6},
	{14, "Si", "silicon", 28.085, 1.11, 6},
	{15, "P", "phosphorus", 30.974, 1.07, 5},
	{16, "S", "sulfur", 32.06, 1.05, 6},
	{17, "Cl", "chlorine", 35.45, 1.02, 1},
	{18, "Ar", "argon", 39.948, 1.06, 0},
	{19, "K", "potassium", 39.098, 2.03, 1},
	{20, "Ca", "calcium", 40.078, 1.76, 2},
	{21, "Sc", "scandium", 44.956, 1.70, 6},
	{22, "Ti", "titanium", 47.867, 1.60, 6},
	{23, "V", "vanadium", 50.942, 1.53, 6},
	{24, "Cr", "chromium", 51.996, 1.39, 6},
	{25, "Mn", "manganese", 54.938, 1.39, 8},
	{26, "Fe", "iron", 55.845, 1.32, 6},
	{27, "Co", "cobalt", 58.933, 1.26, 6},
	{28, "Ni", "nickel", 58.693, 1.24, 6},
	{29, "Cu", "copper", 63.546, 1.32, 6},
	{30, "Zn", "zinc", 65.38, 1.22, 6},
	{31, "Ga", "gallium", 69.723, 1.22, 3},
	{32, "Ge", "germanium", 72.630, 1.20, 4},
	{33, "As", "arsenic", 74.922, 1.19, 3},
	{34, "Se", "selenium", 78.971, 1.20, 2},
	{35, "Br", "bromine", 79.904, 1.20, 1},
	{36, "Kr", "krypton", 83.798, 1.16, 0},
	{37, "Rb", "rubidium", 85.468, 2.20, 1},
	{38, "Sr", "strontium", 87.62, 1.95, 2},
	{39, "Y", "yttrium", 88.906, 1.90, 6},
	{40, "Zr", "zirconium", 91.224, 1.75, 6},
	{41, "Nb", "niobium", 92.906, 1.64, 6},
	{42, "Mo", "molybdenum", 95.95, 1.54, 6},
	{43, "Tc", "technetium", 98.0, 1.47, 6},
	{44, "Ru", "ruthenium", 101.07, 1.46, 6},
	{45, "Rh", "rhodium", 102.91, 1.42, 6},
	{46, "Pd", "palladium", 106.42, 1.39, 6},
	{47, "Ag", "silver", 107.87, 1.45, 6},
	{48, "Cd", "cadmium", 112.41, 1.44, 6},
	{49, "In", "indium", 114.82, 1.42, 3},
	{50, "Sn", "tin", 118.71, 1.39, 4},
	{51, "Sb", "antimony", 121.76, 1.39, 3},
	{52, "Te", "tellurium", 127.60, 1.38, 2},
	{53, "I", "iodine", 126.90, 1.39, 1},
	{54, "Xe", "xenon", 131.29, 1.40, 0},
	{55, "Cs", "caesium", 132.91, 2.44, 1},
	{56, "Ba", "barium", 137.33, 2.15, 2},
	{78, "Pt", "platinum", 195.08, 1.36, 6},
	{79, "Au", "gold", 196.97, 1.36, 6},
	{80, "Hg", "mercury", 200.59, 1.32, 6},
	{82, "Pb", "lead", 207.2, 1.46, 4},
	{83, "Bi", "bismuth", 208.98, 1.48, 3},
}

var (
	bySymbol = make(map[string]Element, len(table)+1)
	byNumber = make(map[int]Element, len(table)+1)
)

func init() {
	bySymbol[Dummy.Symbol] = Dummy
	byNumber[Dummy.Number] = Dummy
	for _, e := range table {
		bySymbol[e.Symbol] = e
		byNumber[e.Number] = e
	}
}
