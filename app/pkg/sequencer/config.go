package sequencer

// Conf 雪花ID生成器配置
type Conf struct {
	NodeId          int64  `json:",range=[0:1023]"`
	Epoch           string `json:",default=2020-01-01T00:00:00Z"`
	RollbackPolicy  string `json:",default=wait,options=wait|reject"`
	MaxRollbackWait string `json:",default=5ms"`
}
