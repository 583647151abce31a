package preset

import "strings"

// Synth identifies the synthesizer a preset targets.
type Synth int

const (
	SynthAny Synth = iota
	SynthSerum
	SynthVital
)

var synthNames = map[Synth]string{
	SynthAny:   "any",
	SynthSerum: "serum",
	SynthVital: "vital",
}

func (s Synth) String() string {
	if name, ok := synthNames[s]; ok {
		return name
	}
	return "unknown"
}

// Genre is a catalog genre filter.
type Genre int

const (
	GenreAny Genre = iota
	GenreHouse
	GenreSynthwave
	GenreDnB
)

var genreNames = map[Genre]string{
	GenreAny:       "any",
	GenreHouse:     "house",
	GenreSynthwave: "synthwave",
	GenreDnB:       "dnb",
}

func (g Genre) String() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return "unknown"
}

// Sound is a catalog sound-type filter.
type Sound int

const (
	SoundAny Sound = iota
	SoundArp
	SoundAtmosphere
	SoundBass
	SoundChord
	SoundDrone
	SoundDrums
	SoundFX
	SoundKeys
	SoundLead
	SoundMisc
	SoundPad
	SoundPluck
	SoundReese
	SoundSeq
	SoundStab
	SoundSub
	SoundSynth
	SoundVox
)

var soundNames = map[Sound]string{
	SoundAny:        "any",
	SoundArp:        "arp",
	SoundAtmosphere: "atmosphere",
	SoundBass:       "bass",
	SoundChord:      "chord",
	SoundDrone:      "drone",
	SoundDrums:      "drums",
	SoundFX:         "fx",
	SoundKeys:       "keys",
	SoundLead:       "lead",
	SoundMisc:       "misc",
	SoundPad:        "pad",
	SoundPluck:      "pluck",
	SoundReese:      "reese",
	SoundSeq:        "seq",
	SoundStab:       "stab",
	SoundSub:        "sub",
	SoundSynth:      "synth",
	SoundVox:        "vox",
}

func (s Sound) String() string {
	if name, ok := soundNames[s]; ok {
		return name
	}
	return "unknown"
}

// Sort is the catalog result ordering.
type Sort int

const (
	SortRelevance Sort = iota
	SortEarliest
	SortMostLiked
	SortMostDownloaded
	SortMostCommented
	SortRandom
)

var sortNames = map[Sort]string{
	SortRelevance:      "relevance",
	SortEarliest:       "earliest",
	SortMostLiked:      "likes",
	SortMostDownloaded: "downloads",
	SortMostCommented:  "comments",
	SortRandom:         "random",
}

func (s Sort) String() string {
	if name, ok := sortNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSynth maps raw input to a Synth. Empty input selects SynthAny.
func ParseSynth(raw string) (Synth, error) {
	return parseEnum("synth", raw, synthNames, SynthAny)
}

// ParseGenre maps raw input to a Genre. Empty input selects GenreAny.
func ParseGenre(raw string) (Genre, error) {
	return parseEnum("genre", raw, genreNames, GenreAny)
}

// ParseSound maps raw input to a Sound. Empty input selects SoundAny.
func ParseSound(raw string) (Sound, error) {
	return parseEnum("sound", raw, soundNames, SoundAny)
}

// ParseSort maps raw input to a Sort. Empty input selects SortRelevance.
func ParseSort(raw string) (Sort, error) {
	return parseEnum("sort", raw, sortNames, SortRelevance)
}

// SoundNames returns the accepted sound filter values, for help output.
func SoundNames() []string {
	names := make([]string, 0, len(soundNames))
	for s := SoundArp; s <= SoundVox; s++ {
		names = append(names, soundNames[s])
	}
	return names
}

func parseEnum[T comparable](kind, raw string, names map[T]string, def T) (T, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return def, nil
	}
	for v, name := range names {
		if name == value {
			return v, nil
		}
	}
	return def, &ParseError{Kind: kind, Input: raw}
}
