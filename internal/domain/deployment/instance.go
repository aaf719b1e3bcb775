package deployment

import "fmt"

// Instance identifies one VM instance of a deployment job.
type Instance struct {
	Deployment string `json:"deployment"`
	Job        string `json:"job"`
	Index      int    `json:"index"`
}

// Ref returns the stable string identity stamped onto address records and
// reported back in conflict errors.
func (i Instance) Ref() string {
	return fmt.Sprintf("%s/%s/%d", i.Deployment, i.Job, i.Index)
}
