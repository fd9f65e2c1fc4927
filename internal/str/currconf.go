//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	BadChars      string
	BlackAndWhite bool
	ChrtHeight    string
	ChrtWidth     string
	CorpusSource  string // "http" or "pg"
	CVFolds       int
	EchoLog       int // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	EmbModel      string
	Embeddings    bool
	FirstTitle    string
	Gzip          bool
	HostIP        string
	HostPort      int
	LogLevel      int
	ManualGC      bool // see messenger.LogPaths()
	MinWordFreq   int
	MisclassN     int
	NeighborCt    int
	OutputDir     string
	PGLogin       PostgresLogin
	ProfileCPU    bool
	ProfileMEM    bool
	QuietStart    bool
	RefetchCorpus bool
	ResetModels   bool
	Scorch        bool
	SecondTitle   string
	Seed          int64
	SelfTest      int
	ServeReports  bool
	TickerActive  bool
	TrainFraction float64
	VectorMaxln   int
	WorkerCount   int
}

type PostgresLogin struct {
	Host   string
	Port   int
	User   string
	Pass   string
	DBName string
}
