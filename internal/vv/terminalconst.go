//    KritesGoClassifier
//    Copyright: E Gunderson 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MINCONFIG = `
{"PostgreSQLPassword": "YOURPASSWORDHERE"}
`

	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2024-25"
	PROJAUTH = "E. Gunderson"
	PROJMAIL = "Department of Classics, 125 Queen’s Park, Toronto, ON  M5S 2C7 Canada"
	PROJURL  = "https://github.com/e-gun/KritesGoClassifier"

	HELPTEXTTEMPLATE = `S3command line optionsS0:
   C1-bwC0          disable color output in the console
   C1-elC0 C2{num}C0    set echo server log level (C10-3C0) [C6currentC0: C3{{.echoll}}C0]
   C1-glC0 C2{num}C0    set golang log level (C10-5C0) [C6currentC0: C3{{.kgcll}}C0]
   C1-hC0           print this help information
   C1-kfC0 C2{num}C0    cross-validation folds [C6currentC0: C3{{.folds}}C0]
   C1-mdC0 C2{string}C0 embedding model for "C1-nnC0"; available: C3gloveC0, C3lexvecC0, and C3w2vC0 [C6currentC0: C3{{.vmodel}}C0]
   C1-mfC0 C2{num}C0    minimum corpus-wide word frequency; words at or below it are dropped [C6currentC0: C3{{.minfreq}}C0]
   C1-nnC0          also train embeddings and chart the nearest neighbors of the strongest terms
   C1-outC0 C2{string}C0 output directory for reports and charts [C6currentC0: C3{{.outdir}}C0]
   C1-pcC0          enable CPU profiling run
   C1-pgC0 C2{string}C0 supply full PostgreSQL credentials C4(*)C0
   C1-pmC0          enable MEM profiling run
   C1-qC0           quiet startup: suppress copyright notice
   C1-rcC0          refetch the corpus even if it is cached
   C1-rvC0          reset the stored model table
   C1-saC0 C2{string}C0 report server IP address [C6currentC0: C3{{.host}}C0]
   C1-sdC0 C2{num}C0    random seed for the split, the folds, and the inspection draw [C6currentC0: C3{{.seed}}C0]
   C1-spC0 C2{num}C0    report server port [C6currentC0: C3{{.port}}C0]
   C1-srcC0 C2{string}C0 corpus source: C3httpC0 or C3pgC0 [C6currentC0: C3{{.src}}C0]
   C1-stC0          run the self-test suite; repeat the flag to add the full end-to-end pass
   C1-t1C0 C2{string}C0 first title (the positive class) [C6currentC0: C3{{.title1}}C0]
   C1-t2C0 C2{string}C0 second title [C6currentC0: C3{{.title2}}C0]
   C1-tfC0 C2{num}C0    training fraction (0-1) [C6currentC0: C3{{.trainfrac}}C0]
   C1-tkC0          turn on the uptime ticker [unavailable if OS is Windows]
   C1-vC0           print version info and exit
   C1-vvC0          print full version info and exit
   C1-wcC0 C2{int}C0    number of workers [C1cpu_countC0 is C3{{.cpus}}C0][C6currentC0: C3{{.workers}}C0]
   C1-wsC0          after the run, serve this report and any stored ones over http
   C1-00C0          erase the corpus cache and the stored model table
     (*) S3exampleS0:
         C4"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"kritesDB\" ,\"User\": \"krites_wr\"}"C0

     S1NB:S0 a properly formatted version of "C3{{.conffile}}C0" in "C3{{.home}}C0" configures everything for you.
         See the sample configuration files at
             C3{{.projurl}}C0
`
)
