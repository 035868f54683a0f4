package config

// Defaults applied by ApplyDefaults.
const (
	DefaultDockerRootDir     = "/var/lib/docker"
	DefaultEtcdIntervalHours = 12
	DefaultEtcdRetention     = 6
)

// ApplyDefaults fills optional fields of the block matching the kind.
func (d *Document) ApplyDefaults() {
	switch d.Kind {
	case KindCluster:
		if d.Cluster == nil {
			return
		}
		if d.Cluster.DockerRootDir == "" {
			d.Cluster.DockerRootDir = DefaultDockerRootDir
		}
		if d.Cluster.EtcdBackup.IntervalHours == 0 {
			d.Cluster.EtcdBackup.IntervalHours = DefaultEtcdIntervalHours
		}
		if d.Cluster.EtcdBackup.Retention == 0 {
			d.Cluster.EtcdBackup.Retention = DefaultEtcdRetention
		}

	case KindNodePool:
		if d.NodePool != nil && d.NodePool.NodeTemplate == "" {
			d.NodePool.NodeTemplate = d.Name
		}

	case KindNodeTemplate:
		if d.NodeTemplate != nil && d.NodeTemplate.Driver == "" {
			d.NodeTemplate.Driver = DriverEportal
		}
	}
}
