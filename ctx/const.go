package ctx

const (
	DefaultConfig = `
{
    loglevel: "info"

    restart_timeout: "90s"
    cooldown: "20s"
    probe_interval: "2s"
    metadata_timeout: "30s"

    clusters: [
        {
            name: "demo"
            zk: "localhost:2181/kafka-demo"
            service: "confluent-server"
            metadata_scheme: "https"
            ca_cert: "/var/ssl/private/ca.crt"
            broker_port: "9092"
            token_port: "9093"
            metadata_port: "8090"
            metrics_port: "7771"
            metrics_enabled: "true"
            brokers: [
                {
                    id: "1"
                    host: "kafka1.demo"
                    rack: "r1"
                }
                {
                    id: "2"
                    host: "kafka2.demo"
                    rack: "r2"
                }
                {
                    id: "3"
                    host: "kafka3.demo"
                    rack: "r3"
                }
            ]
        }
    ]
}
`
)
