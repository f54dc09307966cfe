package oracle

import "github.com/sirupsen/logrus"

// log is the package-scoped logging entry, tagged the way the teacher's
// auth.AuditLog tags its entries with "system": one field identifying
// which pipeline stage emitted the line.
var log = logrus.WithField("system", "oracle")
