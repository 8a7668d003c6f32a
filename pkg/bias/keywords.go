package bias

// Political leaning lexicons for the keyword signal. Matching is done over
// cleaned lowercase text, so entries must be lowercase.
var leftKeywords = []string{
	"progressive", "liberal", "democrat", "social justice", "equality",
	"climate change", "renewable energy", "healthcare reform", "minimum wage",
	"gun control", "immigration reform", "diversity", "inclusion",
	"environmental protection", "green energy", "social welfare",
}

var rightKeywords = []string{
	"conservative", "republican", "traditional values", "free market",
	"small government", "tax cuts", "deregulation", "law and order",
	"national security", "border security", "family values", "religious freedom",
	"fiscal responsibility", "entrepreneurship", "individual liberty",
}
