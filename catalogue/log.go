package catalogue

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "catalogue")
