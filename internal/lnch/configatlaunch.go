//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"text/template"

	"github.com/e-gun/KritesGoClassifier/internal/mm"
	"github.com/e-gun/KritesGoClassifier/internal/str"
	"github.com/e-gun/KritesGoClassifier/internal/vv"
)

var (
	Config *str.CurrentConfiguration
	Msg    = mm.NewMessageMaker()
)

// LookForConfigFile - test to see if we can find a config file; if not, write one with the defaults
func LookForConfigFile() {
	const (
		WROTE = `wrote default configuration to '%s'`
	)

	_, a := os.Stat(vv.CONFIGPROLIX)

	var b error

	h, e := os.UserHomeDir()
	if e != nil {
		// how likely is this...?
		b = fmt.Errorf("cannot find UserHomeDir")
	} else {
		_, b = os.Stat(fmt.Sprintf(vv.CONFIGALTAPTH, h) + vv.CONFIGPROLIX)
	}

	notfound := (a != nil) && (b != nil)

	if notfound && e == nil {
		cd := fmt.Sprintf(vv.CONFIGALTAPTH, h)
		_ = os.MkdirAll(cd, vv.OUTPUTDIRPERMS)

		cfg := BuildDefaultConfig()
		content, err := json.MarshalIndent(cfg, "", vv.JSONINDENT)
		Msg.EC(err)

		err = os.WriteFile(cd+vv.CONFIGPROLIX, content, vv.WRITEPERMS)
		Msg.EC(err)
		Msg.PEEK(fmt.Sprintf(WROTE, cd+vv.CONFIGPROLIX))
	}
}

// ConfigAtLaunch - read the configuration values from JSON and/or command line
func ConfigAtLaunch() {
	const (
		FAIL1 = "Could not parse your information as a valid collection of credentials. Use the following template:"
		FAIL2 = `"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"kritesDB\" ,\"User\": \"krites_wr\"}"`
		FAIL3 = `Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead.`
		FAIL5 = "Refusing to set a workercount greater than NumCPU: %d > %d ---> setting workercount value to NumCPU: %d"
		FAIL6 = "Could not open '%s'"
		FAIL7 = "ConfigAtLaunch() failed to execute help text template"
		FAIL8 = "A training fraction of %.2f leaves nothing to train or nothing to test; keeping %.2f"
	)

	Config = BuildDefaultConfig()

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)
	prolixcfg := fmt.Sprintf("%s%s", h, vv.CONFIGPROLIX)

	loadedcfg, e := os.Open(prolixcfg)
	if e != nil {
		Msg.TMI(fmt.Sprintf(FAIL6, prolixcfg))
	}

	decoderc := json.NewDecoder(loadedcfg)
	confc := str.CurrentConfiguration{}
	errc := decoderc.Decode(&confc)
	_ = loadedcfg.Close()

	if errc == nil {
		Config = &confc
	} else {
		Msg.CRIT(fmt.Sprintf(FAIL3, prolixcfg))
	}

	// an old CONFIGPROLIX might zero fields that must never be zero
	if Config.MisclassN == 0 {
		Config.MisclassN = vv.MISCLASSSAMPLE
	}

	if Config.CVFolds == 0 {
		Config.CVFolds = vv.CVFOLDS
	}

	if Config.TrainFraction == 0 {
		Config.TrainFraction = vv.TRAINFRACTION
	}

	args := os.Args[1:len(os.Args)]

	help := func() {
		PrintVersion(*Config)
		PrintBuildInfo(*Config)

		m := map[string]interface{}{
			"conffile":  vv.CONFIGPROLIX,
			"cpus":      runtime.NumCPU(),
			"echoll":    Config.EchoLog,
			"folds":     Config.CVFolds,
			"home":      h,
			"host":      Config.HostIP,
			"kgcll":     Config.LogLevel,
			"minfreq":   Config.MinWordFreq,
			"outdir":    Config.OutputDir,
			"port":      Config.HostPort,
			"projurl":   vv.PROJURL,
			"seed":      Config.Seed,
			"src":       Config.CorpusSource,
			"title1":    Config.FirstTitle,
			"title2":    Config.SecondTitle,
			"trainfrac": Config.TrainFraction,
			"vmodel":    Config.EmbModel,
			"workers":   Config.WorkerCount}

		t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))

		var b bytes.Buffer
		if ee := t.Execute(&b, m); ee != nil {
			Msg.CRIT(FAIL7)
		}
		fmt.Println(Msg.Styled(Msg.Color(b.String())))

		os.Exit(0)
	}

	for i, a := range args {
		switch a {
		case "-vv":
			PrintVersion(*Config)
			PrintBuildInfo(*Config)
			os.Exit(1)
		case "-v":
			fmt.Println(vv.VERSION + VersSuppl)
			os.Exit(1)
		case "-bw":
			Config.BlackAndWhite = true
		case "-el":
			ll, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.EchoLog = ll
		case "-gl":
			ll, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.LogLevel = ll
		case "-h":
			help()
		case "-kf":
			kf, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.CVFolds = kf
		case "-md":
			Config.EmbModel = args[i+1]
		case "-mf":
			mf, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.MinWordFreq = mf
		case "-nn":
			Config.Embeddings = true
		case "-out":
			Config.OutputDir = args[i+1]
		case "-pc":
			Config.ProfileCPU = true
		case "-pg":
			js := args[i+1]
			var pl str.PostgresLogin
			err := json.Unmarshal([]byte(js), &pl)
			if err != nil {
				Msg.MAND(FAIL1)
				Msg.CRIT(FAIL2)
			}
			Config.PGLogin = pl
		case "-pm":
			Config.ProfileMEM = true
		case "-q":
			Config.QuietStart = true
		case "-rc":
			Config.RefetchCorpus = true
		case "-rv":
			Config.ResetModels = true
		case "-sa":
			Config.HostIP = args[i+1]
		case "-sd":
			sd, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.Seed = int64(sd)
		case "-sp":
			p, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.HostPort = p
		case "-src":
			Config.CorpusSource = args[i+1]
		case "-st":
			Config.SelfTest += 1
		case "-t1":
			Config.FirstTitle = args[i+1]
		case "-t2":
			Config.SecondTitle = args[i+1]
		case "-tf":
			tf, err := strconv.ParseFloat(args[i+1], 64)
			Msg.EC(err)
			Config.TrainFraction = tf
		case "-tk":
			Config.TickerActive = true
		case "-wc":
			wc, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.WorkerCount = wc
		case "-ws":
			Config.ServeReports = true
		case "-00":
			Config.Scorch = true
		default:
			// do nothing
		}
	}

	y := ""
	if errc != nil {
		y = " *not*"
	}
	Msg.TMI(fmt.Sprintf("'%s%s'%s loaded", h, vv.CONFIGPROLIX, y))

	SetConfigPass(Config)

	if Config.TrainFraction <= 0 || Config.TrainFraction >= 1 {
		Msg.CRIT(fmt.Sprintf(FAIL8, Config.TrainFraction, vv.TRAINFRACTION))
		Config.TrainFraction = vv.TRAINFRACTION
	}

	if Config.VectorMaxln == 0 {
		Config.VectorMaxln = vv.VECTORMAXLINES
	}

	if Config.WorkerCount > runtime.NumCPU() {
		Msg.CRIT(fmt.Sprintf(FAIL5, Config.WorkerCount, runtime.NumCPU(), runtime.NumCPU()))
		Config.WorkerCount = runtime.NumCPU()
	}
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BadChars = vv.UNACCEPTABLEINPUT
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.ChrtHeight = vv.DEFAULTCHRTHEIGHT
	c.ChrtWidth = vv.DEFAULTCHRTWIDTH
	c.CorpusSource = vv.DEFAULTCORPUSSOURCE
	c.CVFolds = vv.CVFOLDS
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.EmbModel = vv.VECTORMODELDEFAULT
	c.Embeddings = false
	c.FirstTitle = vv.FIRSTTITLE
	c.Gzip = vv.USEGZIP
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.ManualGC = false
	c.MinWordFreq = vv.MINWORDFREQ
	c.MisclassN = vv.MISCLASSSAMPLE
	c.NeighborCt = vv.VECTORNEIGHBORS
	c.OutputDir = vv.DEFAULTOUTPUTDIR
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.RefetchCorpus = false
	c.ResetModels = false
	c.Scorch = false
	c.SecondTitle = vv.SECONDTITLE
	c.Seed = vv.RANDOMSEED
	c.SelfTest = 0
	c.ServeReports = false
	c.TickerActive = vv.TICKERISACTIVE
	c.TrainFraction = vv.TRAINFRACTION
	c.VectorMaxln = vv.VECTORMAXLINES
	c.WorkerCount = runtime.NumCPU()

	pl := str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	c.PGLogin = pl

	return &c
}

// SetConfigPass - try to fill Config.PGLogin.Pass from the basic config files; PostgreSQL is optional, so an empty
// password is only fatal later, if and when something actually asks for a connection
func SetConfigPass(cfg *str.CurrentConfiguration) {
	const (
		FAIL3 = "FAILED to load database credentials from either '%s' or '%s'"
		FAIL4 = "'-src pg' needs them; at a minimum be sure that a '" + vv.CONFIGBASIC + "' file exists and that it has the following format:"
		FAIL6 = "Could not open '%s'"
		BLANK = "PostgreSQLPassword is blank; database-backed features will refuse to run"
	)
	type ConfigFile struct {
		PostgreSQLPassword string
	}

	if cfg.PGLogin.Pass != "" {
		return
	}

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)

	cf := fmt.Sprintf("%s/%s", vv.CONFIGLOCATION, vv.CONFIGBASIC)
	acf := fmt.Sprintf("%s%s", h, vv.CONFIGBASIC)

	cfa, ea := os.Open(cf)
	if ea != nil {
		Msg.TMI(fmt.Sprintf(FAIL6, cf))
	}
	cfb, eb := os.Open(acf)
	if eb != nil {
		Msg.TMI(fmt.Sprintf(FAIL6, acf))
	}

	defer func(cfa *os.File) {
		err := cfa.Close()
		if err != nil {
		} // the file was almost certainly not found in the first place...
	}(cfa)
	defer func(cfb *os.File) {
		err := cfb.Close()
		if err != nil {
		} // the file was almost certainly not found in the first place...
	}(cfb)

	decodera := json.NewDecoder(cfa)
	confa := ConfigFile{}
	erra := decodera.Decode(&confa)

	decoderb := json.NewDecoder(cfb)
	confb := ConfigFile{}
	errb := decoderb.Decode(&confb)

	thecfg := ConfigFile{}
	if erra == nil {
		thecfg = confa
	} else if errb == nil {
		thecfg = confb
	}

	if thecfg.PostgreSQLPassword == "" {
		if cfg.CorpusSource == "pg" {
			Msg.CRIT(fmt.Sprintf(FAIL3, cf, acf))
			Msg.CRIT(FAIL4)
			fmt.Printf(vv.MINCONFIG)
			Msg.ExitOrHang(0)
		}
		Msg.TMI(BLANK)
		return
	}

	cfg.PGLogin.Pass = thecfg.PostgreSQLPassword
}
