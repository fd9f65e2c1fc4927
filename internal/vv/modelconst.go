//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	CONFIGVECTORW2V    = "kgc-vector-conf-w2v.json"
	CONFIGVECTORGLOVE  = "kgc-vector-conf-glove.json"
	CONFIGVECTORLEXVEC = "kgc-vector-conf-lexvec.json"

	DEFAULTCHRTWIDTH  = "1500px"
	DEFAULTCHRTHEIGHT = "1200px"

	// the regularization path: nudge one coefficient by GPSSTEPSIZE per iteration and
	// record a snapshot every GPSRECORDEVERY iterations

	GPSSTEPSIZE    = 0.01
	GPSMAXSTEPS    = 6000
	GPSRECORDEVERY = 25

	TOPNWORDFREQ = 15 // bars per title on the frequency chart
	TOPNCOEFF    = 20 // bars per sign on the coefficient chart
	TOPNDISTINCT = 12 // tf-idf terms per title

	VECTORNEIGHBORS    = 16
	VECTORNEIGHBORSMAX = 40
	VECTORNEIGHBORSMIN = 4
	VECTORMAXLINES     = 1000000
	VECTORMODELDEFAULT = "w2v"

	MODELTABLENAME = "kgc_model_store"

	TSNEPERPLEXITY = 150 // default 300
	TSNELEARNINGRT = 100 // default 100
	TSNEMAXITERS   = 150 // default 300
	TSNEMAXDOCS    = 600 // t-SNE cost grows with the square of the document count

	TFIDFCHUNKLINES = 200 // tf-idf wants more than two "documents"; chunk the works into pseudo-documents
)
