package rtlsdr

import (
	"os/exec"

	"github.com/golang/glog"
)

const biastAlias = "rtl_biast"

// SetBiasTee switches the dongle's bias tee on or off via the rtl_biast
// utility. Receivers with an external LNA powered over coax need this before
// collection starts and after it ends.
func SetBiasTee(on bool) error {
	state := "0"
	verb := "off"
	if on {
		state = "1"
		verb = "on"
	}
	cmd := exec.Command(biastAlias, "-b", state)
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		glog.V(1).Infof("%s: %s", biastAlias, out)
	}
	if err != nil {
		return err
	}
	glog.Infof("Bias tee switched %s.", verb)
	return nil
}
