package ctx

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	jsconf "github.com/funkygao/jsconf"
)

func LoadConfig(fn string) {
	cf, err := jsconf.Load(fn)
	if err != nil {
		panic(err)
	}

	conf = new(config)
	conf.hostname, _ = os.Hostname()
	conf.logLevel = cf.String("loglevel", "info")
	conf.restartTimeout = mustDuration(cf.String("restart_timeout", "90s"))
	conf.coolDown = mustDuration(cf.String("cooldown", "20s"))
	conf.probeInterval = mustDuration(cf.String("probe_interval", "2s"))
	conf.metadataTimeout = mustDuration(cf.String("metadata_timeout", "30s"))
	conf.clusters = make(map[string]*Cluster)

	for i := 0; i < len(cf.List("clusters", nil)); i++ {
		section, err := cf.Section(fmt.Sprintf("clusters[%d]", i))
		if err != nil {
			panic(err)
		}

		c := new(Cluster)
		c.loadConfig(section)
		conf.clusters[c.Name] = c
	}
}

func LoadFromHome() {
	var configFile string
	if usr, err := user.Current(); err == nil {
		configFile = filepath.Join(usr.HomeDir, ".kroll.cf")
	} else {
		panic(err)
	}

	_, err := os.Stat(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			// create the config file on the fly
			if e := ioutil.WriteFile(configFile,
				[]byte(strings.TrimSpace(DefaultConfig)), 0644); e != nil {
				panic(e)
			}
		} else {
			panic(err)
		}
	}

	LoadConfig(configFile)
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
