//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "KritesGoClassifier"
	SHORTNAME = "KGC"
	VERSION   = "0.1.2"

	FIRSTTITLE  = "The War of the Worlds"
	SECONDTITLE = "Pride and Prejudice"

	AVGWORDSPERLINE = 8  // hard coding a suspect assumption
	CHARSPERLINE    = 60 // used to preallocate memory when flattening lines: closer to a max than a real average

	CONFIGLOCATION = "."
	CONFIGALTAPTH  = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC    = "kgc-conf.json"
	CONFIGPROLIX   = "kgc-prolix-conf.json"
	CONFIGSTOPS    = "kgc-stops-english.json"

	BLACKANDWHITE       = false
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 0
	USEGZIP             = false

	DEFAULTPSQLHOST = "127.0.0.1"
	DEFAULTPSQLUSER = "krites_wr"
	DEFAULTPSQLPORT = 5432
	DEFAULTPSQLDB   = "kritesDB"

	DEFAULTCORPUSSOURCE = "http" // "http" or "pg"
	GUTENBERGTXTURL     = "https://www.gutenberg.org/cache/epub/%d/pg%d.txt"
	GUTENBERGSTARTTAG   = "*** START OF"
	GUTENBERGENDTAG     = "*** END OF"
	FETCHTIMEOUT        = 90 * time.Second

	SQLITEFILENAME  = "kgc-corpora.db"
	CORPUSTABLENAME = "corpuslines"

	MINWORDFREQ    = 10   // a word must occur *more* often than this across the whole corpus to enter the vocabulary
	TRAINFRACTION  = 0.75 // fraction of the documents assigned to the training split
	CVFOLDS        = 10
	RANDOMSEED     = 1
	MISCLASSSAMPLE = 10  // misclassified documents to draw for inspection
	PROBHITHRESH   = 0.8 // the "confidently wrong" inspection window
	PROBLOTHRESH   = 0.2

	DEFAULTOUTPUTDIR = "kgc-reports"

	MAXECHOREQPERSECONDPERIP = 60
	SERVEDFROMHOST           = "127.0.0.1"
	SERVEDFROMPORT           = 8001
	TIMEOUTRD                = 15 * time.Second
	TIMEOUTWR                = 120 * time.Second

	JSONINDENT     = "  "
	TICKERISACTIVE = false
	TICKERDELAY    = 30 * time.Second
	WRITEPERMS     = 0644
	OUTPUTDIRPERMS = 0755
	MAXTITLELENGTH = 110
	MAXRUNIDLENGTH = 36

	UNACCEPTABLEINPUT = `"'!@:,=_/\&;#%()`
)
