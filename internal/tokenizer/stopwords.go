package tokenizer

// stopwords is the built-in Russian and English function-word list. It only
// affects tokenisation when Config.RemoveStopwords is set; the indexing
// pipeline leaves it off so every surface form is searchable.
var stopwords = map[string]struct{}{
	"и": {}, "в": {}, "во": {}, "не": {}, "что": {}, "он": {}, "на": {},
	"я": {}, "с": {}, "со": {}, "как": {}, "а": {}, "то": {}, "все": {},
	"она": {}, "так": {}, "его": {}, "но": {}, "да": {}, "ты": {}, "к": {},
	"у": {}, "же": {}, "вы": {}, "за": {}, "бы": {}, "по": {},
	"только": {}, "её": {}, "мне": {}, "было": {}, "вот": {}, "от": {},
	"меня": {}, "ещё": {}, "нет": {}, "о": {}, "из": {}, "ему": {},
	"для": {}, "при": {}, "без": {}, "до": {}, "под": {}, "над": {},
	"об": {}, "про": {}, "это": {}, "этот": {}, "эта": {}, "эти": {},
	"был": {}, "была": {}, "были": {}, "быть": {}, "есть": {}, "или": {},
	"также": {}, "году": {}, "года": {}, "лет": {},
	"который": {}, "которая": {}, "которое": {}, "которые": {},
	"где": {}, "когда": {}, "если": {}, "чем": {},
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "is": {}, "was": {}, "are": {}, "were": {}, "been": {},
	"be": {}, "have": {}, "has": {}, "had": {}, "it": {}, "its": {},
}

func isStopword(term string) bool {
	_, ok := stopwords[term]
	return ok
}
