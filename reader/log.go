package reader

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "reader")
