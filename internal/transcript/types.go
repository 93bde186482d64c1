package transcript

// Token is a single recognized word with its own time interval.
type Token struct {
	Start float64  `json:"start"`
	End   float64  `json:"end"`
	Word  string   `json:"word"`
	Conf  *float64 `json:"conf,omitempty"`
}

// Speaker identifies who spoke a replica.
type Speaker struct {
	Idx         string   `json:"idx"`
	DisplayName string   `json:"display_name,omitempty"`
	Conf        *float64 `json:"conf,omitempty"`
}

// Speech holds the timing and recognized content of a replica.
// An empty Text and a nil Tokens mean the field is absent.
type Speech struct {
	TimeStart float64  `json:"time_start"`
	TimeEnd   float64  `json:"time_end"`
	Duration  float64  `json:"duration"`
	Tokens    []Token  `json:"tokens,omitempty"`
	Text      string   `json:"text,omitempty"`
	Conf      *float64 `json:"conf,omitempty"`
}

// Models names the upstream model used at each pipeline stage.
type Models struct {
	SDR   string `json:"sdr,omitempty"`   // speaker diarization
	SCD   string `json:"scd,omitempty"`   // speaker change detection
	ASR   string `json:"asr,omitempty"`   // speech recognition
	VAD   string `json:"vad,omitempty"`   // voice activity detection
	Punct string `json:"punct,omitempty"` // punctuation and casing restoration
}

// Replica is one structured transcript unit: a diarization segment with its
// speaker and speech sub-records.
type Replica struct {
	ID       string   `json:"id,omitempty"`
	Idx      string   `json:"idx,omitempty"`
	PathFile string   `json:"path_file,omitempty"`
	IdxFile  string   `json:"idx_file,omitempty"`
	Speaker  *Speaker `json:"speaker,omitempty"`
	Speech   Speech   `json:"speech"`
	Models   *Models  `json:"models,omitempty"`
}

// Transcript is an ordered JSR document.
type Transcript []Replica

// Clone returns a deep copy of the replica.
func (r Replica) Clone() Replica {
	c := r
	if r.Speaker != nil {
		s := *r.Speaker
		s.Conf = cloneFloat(r.Speaker.Conf)
		c.Speaker = &s
	}
	if r.Models != nil {
		m := *r.Models
		c.Models = &m
	}
	c.Speech.Conf = cloneFloat(r.Speech.Conf)
	if r.Speech.Tokens != nil {
		c.Speech.Tokens = make([]Token, len(r.Speech.Tokens))
		for i, tok := range r.Speech.Tokens {
			tok.Conf = cloneFloat(tok.Conf)
			c.Speech.Tokens[i] = tok
		}
	}
	return c
}

// Clone returns a deep copy of the transcript.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	for i, r := range t {
		out[i] = r.Clone()
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Float returns a pointer to v, for optional confidence fields.
func Float(v float64) *float64 {
	return &v
}
