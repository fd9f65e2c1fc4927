//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package vec trains word embedding models over the loaded corpus and answers nearest
// neighbor queries against them. The embeddings are a descriptive sidecar to the
// classifier: they tell you what company the discriminative words keep, not which
// title a document belongs to.
package vec

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/e-gun/KritesGoClassifier/internal/db"
	"github.com/e-gun/KritesGoClassifier/internal/gen"
	"github.com/e-gun/KritesGoClassifier/internal/lnch"
	"github.com/e-gun/KritesGoClassifier/internal/mm"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/tkn"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/model"
	"github.com/e-gun/wego/pkg/model/glove"
	"github.com/e-gun/wego/pkg/model/lexvec"
	"github.com/e-gun/wego/pkg/model/modelutil/vector"
	"github.com/e-gun/wego/pkg/model/word2vec"
	"github.com/e-gun/wego/pkg/search"
)

var Msg = lnch.NewMessageMakerWithDefaults()

//
// WEGO DEFAULTS
//

// DefaultW2VVectors - the word2vec.Options you get if you do not edit the config file
var DefaultW2VVectors = word2vec.Options{
	BatchSize:          1024,
	Dim:                125,
	DocInMemory:        true,
	Goroutines:         20,
	Initlr:             0.025,
	Iter:               15,
	LogBatch:           100000,
	MaxCount:           -1,
	MaxDepth:           150,
	MinCount:           10,
	MinLR:              0.0000025,
	ModelType:          "skipgram",
	NegativeSampleSize: 5,
	OptimizerType:      "hs",
	SubsampleThreshold: 0.001,
	ToLower:            false,
	UpdateLRBatch:      100000,
	Verbose:            true,
	Window:             8,
}

// DefaultGloveVectors - the glove.Options you get if you do not edit the config file
var DefaultGloveVectors = glove.Options{
	Alpha:              0.55,
	BatchSize:          1024,
	CountType:          "inc",
	Dim:                75,
	DocInMemory:        true,
	Goroutines:         20,
	Initlr:             0.025,
	Iter:               25,
	LogBatch:           100000,
	MaxCount:           -1,
	MinCount:           10,
	SolverType:         "adagrad",
	SubsampleThreshold: 0.001,
	ToLower:            false,
	Verbose:            true,
	Window:             8,
	Xmax:               90,
}

// DefaultLexVecVectors - the lexvec.Options you get if you do not edit the config file
var DefaultLexVecVectors = lexvec.Options{
	BatchSize:          1024,
	Dim:                125,
	DocInMemory:        true,
	Goroutines:         20,
	Initlr:             0.025,
	Iter:               15,
	LogBatch:           100000,
	MaxCount:           -1,
	MinCount:           10,
	MinLR:              0.025 * 1.0e-4,
	NegativeSampleSize: 5,
	RelationType:       "ppmi",
	Smooth:             0.75,
	SubsampleThreshold: 1.0e-3,
	ToLower:            false,
	UpdateLRBatch:      100000,
	Verbose:            true,
	Window:             8,
}

// w2vvectorconfig - read the CONFIGVECTORW2V file and return word2vec.Options
func w2vvectorconfig() word2vec.Options {
	const (
		ERR1 = "w2vvectorconfig() cannot find UserHomeDir"
		ERR2 = "w2vvectorconfig() failed to parse "
		MSG1 = "wrote default vector configuration file "
		MSG2 = "read vector configuration from "
	)

	cfg := DefaultW2VVectors
	cfg.Goroutines = runtime.NumCPU()

	h, e := os.UserHomeDir()
	if e != nil {
		Msg.MAND(ERR1)
		return cfg
	}

	_, yes := os.Stat(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGVECTORW2V)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, vv.JSONINDENT, vv.JSONINDENT)
		Msg.EC(err)

		err = os.WriteFile(fmt.Sprintf(vv.CONFIGALTAPTH, h)+vv.CONFIGVECTORW2V, content, vv.WRITEPERMS)
		Msg.EC(err)
		Msg.PEEK(MSG1 + vv.CONFIGVECTORW2V)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGVECTORW2V)
		decoderc := json.NewDecoder(loadedcfg)
		vc := word2vec.Options{}
		errc := decoderc.Decode(&vc)
		_ = loadedcfg.Close()
		if errc != nil {
			Msg.CRIT(ERR2 + vv.CONFIGVECTORW2V)
			vc = DefaultW2VVectors
		}
		Msg.TMI(MSG2 + vv.CONFIGVECTORW2V)
		cfg = vc
	}

	return cfg
}

// glovevectorconfig - read the CONFIGVECTORGLOVE file and return glove.Options
func glovevectorconfig() glove.Options {
	const (
		ERR1 = "glovevectorconfig() cannot find UserHomeDir"
		ERR2 = "glovevectorconfig() failed to parse "
		MSG1 = "wrote default vector configuration file "
		MSG2 = "read vector configuration from "
	)

	cfg := DefaultGloveVectors
	cfg.Goroutines = runtime.NumCPU()

	h, e := os.UserHomeDir()
	if e != nil {
		Msg.MAND(ERR1)
		return cfg
	}

	_, yes := os.Stat(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGVECTORGLOVE)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, vv.JSONINDENT, vv.JSONINDENT)
		Msg.EC(err)

		err = os.WriteFile(fmt.Sprintf(vv.CONFIGALTAPTH, h)+vv.CONFIGVECTORGLOVE, content, vv.WRITEPERMS)
		Msg.EC(err)
		Msg.PEEK(MSG1 + vv.CONFIGVECTORGLOVE)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGVECTORGLOVE)
		decoderc := json.NewDecoder(loadedcfg)
		vc := glove.Options{}
		errc := decoderc.Decode(&vc)
		_ = loadedcfg.Close()
		if errc != nil {
			Msg.CRIT(ERR2 + vv.CONFIGVECTORGLOVE)
			vc = DefaultGloveVectors
		}
		Msg.TMI(MSG2 + vv.CONFIGVECTORGLOVE)
		cfg = vc
	}

	return cfg
}

// lexvecvectorconfig - read the CONFIGVECTORLEXVEC file and return lexvec.Options
func lexvecvectorconfig() lexvec.Options {
	const (
		ERR1 = "lexvecvectorconfig() cannot find UserHomeDir"
		ERR2 = "lexvecvectorconfig() failed to parse "
		MSG1 = "wrote default vector configuration file "
		MSG2 = "read vector configuration from "
	)

	cfg := DefaultLexVecVectors
	cfg.Goroutines = runtime.NumCPU()

	h, e := os.UserHomeDir()
	if e != nil {
		Msg.MAND(ERR1)
		return cfg
	}

	_, yes := os.Stat(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGVECTORLEXVEC)

	if yes != nil {
		content, err := json.MarshalIndent(cfg, vv.JSONINDENT, vv.JSONINDENT)
		Msg.EC(err)

		err = os.WriteFile(fmt.Sprintf(vv.CONFIGALTAPTH, h)+vv.CONFIGVECTORLEXVEC, content, vv.WRITEPERMS)
		Msg.EC(err)
		Msg.PEEK(MSG1 + vv.CONFIGVECTORLEXVEC)
	} else {
		loadedcfg, _ := os.Open(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGVECTORLEXVEC)
		decoderc := json.NewDecoder(loadedcfg)
		vc := lexvec.Options{}
		errc := decoderc.Decode(&vc)
		_ = loadedcfg.Close()
		if errc != nil {
			Msg.CRIT(ERR2 + vv.CONFIGVECTORLEXVEC)
			vc = DefaultLexVecVectors
		}
		Msg.TMI(MSG2 + vv.CONFIGVECTORLEXVEC)
		cfg = vc
	}

	return cfg
}

//
// TRAINING
//

// BuildTextBlock - flatten documents into the single long string that wego wants to see
func BuildTextBlock(docs []str.Document, stops map[string]struct{}) string {
	// string addition would use a huge amount of time; strings.Builder does this in a blink
	var sb strings.Builder
	sb.Grow(vv.CHARSPERLINE * len(docs))
	for i := 0; i < len(docs); i++ {
		wds := tkn.Tokenize(docs[i].Text)
		for _, w := range wds {
			// drop skipwords: function words swamp the neighborhoods otherwise
			if _, s := stops[w]; s {
				continue
			}
			sb.WriteString(w + " ")
		}
	}
	return sb.String()
}

// GenerateEmbeddings - train a w2v/glove/lexvec model on the documents and return its embeddings
func GenerateEmbeddings(modeltype string, docs []str.Document) embedding.Embeddings {
	const (
		FAIL1 = "model initialization failed"
		FAIL2 = "GenerateEmbeddings() failed to train vector embeddings"
		FAIL3 = "GenerateEmbeddings() failed to save vector embeddings"
		FAIL4 = "GenerateEmbeddings() failed to load vector embeddings"
		MSG1  = "GenerateEmbeddings() gathered %d lines"
		MSG2  = "GenerateEmbeddings() successfully trained a %s model (%ss)"
		MSG3  = "training run #%d out of %d total iterations"
	)

	start := time.Now()
	Msg.PEEK(fmt.Sprintf(MSG1, len(docs)))

	thetext := BuildTextBlock(docs, tkn.StopSet())

	// [a] vectorize the text block

	var vmodel model.Model
	var ti int

	switch modeltype {
	case "glove":
		cfg := glovevectorconfig()
		m, err := glove.NewForOptions(cfg)
		if err != nil {
			Msg.MAND(FAIL1)
		}
		vmodel = m
		ti = cfg.Iter
	case "lexvec":
		cfg := lexvecvectorconfig()
		m, err := lexvec.NewForOptions(cfg)
		if err != nil {
			Msg.MAND(FAIL1)
		}
		vmodel = m
		ti = cfg.Iter
	default:
		cfg := w2vvectorconfig()
		m, err := word2vec.NewForOptions(cfg)
		if err != nil {
			Msg.MAND(FAIL1)
		}
		vmodel = m
		ti = cfg.Iter
	}

	// input for word2vec.Train() is 'io.ReadSeeker'
	b := bytes.NewReader([]byte(thetext))

	finished := make(chan bool)

	// .Train() but do not block; so we can also .Reporter()
	go func() {
		if err := vmodel.Train(b); err != nil {
			Msg.MAND(FAIL2)
		} else {
			t := fmt.Sprintf("%.3f", time.Since(start).Seconds())
			Msg.TMI(fmt.Sprintf(MSG2, modeltype, t))
		}
		finished <- true
	}()

	ct := make(chan int)
	rep := make(chan string)
	go vmodel.Reporter(ct, rep)

	done := make(chan bool)
	getreport := func() {
		for {
			select {
			case m := <-ct:
				Msg.TMI(fmt.Sprintf(MSG3, m, ti))
			case <-rep:
				// [KGC] trained 100062 words 529.0315ms
			case <-done:
				return
			}
		}
	}

	go getreport()

	_ = <-finished
	close(done)

	// use buffers; skip the disk; psql used for storage: db.ModelDBAdd() & db.ModelDBFetch()
	var buf bytes.Buffer
	w := io.Writer(&buf)
	err := vmodel.Save(w, vector.Agg)
	if err != nil {
		Msg.NOTE(FAIL3)
	}

	r := io.Reader(&buf)
	var embs embedding.Embeddings
	embs, err = embedding.Load(r)
	if err != nil {
		Msg.NOTE(FAIL4)
		embs = embedding.Embeddings{}
	}

	return embs
}

// EmbeddingsFor - fetch the stored embeddings for this corpus+model combination or train a fresh set
func EmbeddingsFor(cfg *str.CurrentConfiguration, lc *str.LabeledCorpus) embedding.Embeddings {
	const (
		FMSG = "fetching a stored model (%s)"
		GMSG = "generating a %s model"
	)

	docs := lc.Docs
	if cfg.VectorMaxln > 0 && len(docs) > cfg.VectorMaxln {
		docs = docs[:cfg.VectorMaxln]
	}

	fp := embeddingfingerprint(cfg.EmbModel, lc.Titles, len(docs))

	var embs embedding.Embeddings
	if db.SQLPool != nil && db.ModelDBCheck(fp) {
		Msg.FYI(fmt.Sprintf(FMSG, fp))
		if db.ModelDBFetch(fp, &embs) {
			return embs
		}
	}

	Msg.FYI(fmt.Sprintf(GMSG, cfg.EmbModel))
	embs = GenerateEmbeddings(cfg.EmbModel, docs)

	if db.SQLPool != nil && len(embs) != 0 {
		db.ModelDBAdd(fp, embs)
		db.ModelDBSize(mm.MSGPEEK)
	}

	return embs
}

// embeddingfingerprint - md5 of everything that could alter the embeddings for a corpus
func embeddingfingerprint(modeltype string, titles [2]string, nlines int) string {
	const (
		FAIL = "embeddingfingerprint() failed to marshal the run parameters"
	)

	// the ACTIVE stop list: an edited stop file yields a different text block and so a different model
	stops := gen.StringMapKeysIntoSlice(tkn.StopSet())
	sort.Strings(stops)

	var ok bool
	f1, e1 := json.Marshal(titles)
	f2, e2 := json.Marshal(stops)

	var f3 []byte
	var e3 error
	switch modeltype {
	case "glove":
		f3, e3 = json.Marshal(glovevectorconfig())
	case "lexvec":
		f3, e3 = json.Marshal(lexvecvectorconfig())
	default:
		f3, e3 = json.Marshal(w2vvectorconfig())
	}

	ok = e1 == nil && e2 == nil && e3 == nil
	if !ok {
		Msg.WARN(FAIL)
		return fmt.Sprintf("%032d", 0)
	}

	f1 = append(f1, f2...)
	f1 = append(f1, f3...)
	f1 = append(f1, []byte(fmt.Sprintf("%s-%d", modeltype, nlines))...)

	return fmt.Sprintf("%x", md5.Sum(f1))
}

//
// QUERIES
//

// ClampNeighborCount - out of range neighbor counts fall back to the default
func ClampNeighborCount(ncount int) int {
	if ncount < vv.VECTORNEIGHBORSMIN || ncount > vv.VECTORNEIGHBORSMAX {
		ncount = vv.VECTORNEIGHBORS
	}
	return ncount
}

// Neighborhood - the words closest to a seed word plus the words closest to each of those
func Neighborhood(embs embedding.Embeddings, word string, ncount int) map[string]search.Neighbors {
	const (
		FAIL1 = "Neighborhood() could not find neighbors of a neighbor: '%s' neighbors (via '%s')"
		FAIL2 = "Neighborhood() failed to produce a Searcher"
		FAIL3 = "Neighborhood() failed to yield Neighbors"
	)

	ncount = ClampNeighborCount(ncount)

	searcher, err := search.New(embs...)
	if err != nil {
		Msg.FYI(FAIL2)
		searcher = func() *search.Searcher { return &search.Searcher{} }()
	}

	nn := make(map[string]search.Neighbors)
	neighbors, err := searcher.SearchInternal(word, ncount)
	if err != nil {
		Msg.FYI(FAIL3)
		neighbors = search.Neighbors{}
	}

	nn[word] = neighbors
	for _, n := range neighbors {
		meta, e := searcher.SearchInternal(n.Word, ncount)
		if e != nil {
			Msg.FYI(fmt.Sprintf(FAIL1, n.Word, word))
		} else {
			nn[n.Word] = meta
		}
	}

	return nn
}

// DiscriminantNeighbors - neighborhoods for the most heavily weighted words in a fitted model
func DiscriminantNeighbors(embs embedding.Embeddings, fm *str.FittedModel, nterms int, ncount int) map[string]search.Neighbors {
	const (
		FAIL1 = "DiscriminantNeighbors() failed to produce a Searcher"
		FAIL2 = "DiscriminantNeighbors() has no neighbors for '%s'"
	)

	ncount = ClampNeighborCount(ncount)

	searcher, err := search.New(embs...)
	if err != nil {
		Msg.FYI(FAIL1)
		return make(map[string]search.Neighbors)
	}

	// rank the coefficients by |estimate|; the sign does not matter for "most discriminative"
	var ww str.WWList
	for t, e := range fm.Coefficients {
		if e < 0 {
			e = -e
		}
		ww = append(ww, str.WeightedWord{Word: t, Score: e})
	}
	sort.Sort(ww)
	if nterms > len(ww) {
		nterms = len(ww)
	}

	nn := make(map[string]search.Neighbors)
	for i := 0; i < nterms; i++ {
		neighbors, e := searcher.SearchInternal(ww[i].Word, ncount)
		if e != nil {
			// a term can be filtered out of the embeddings by MinCount even though it survived the matrix
			Msg.TMI(fmt.Sprintf(FAIL2, ww[i].Word))
			continue
		}
		nn[ww[i].Word] = neighbors
	}

	return nn
}
