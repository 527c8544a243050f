package cli

import "github.com/dmitrijs2005/medreport/internal/client/upload"

var ErrBusy = upload.ErrBusy
