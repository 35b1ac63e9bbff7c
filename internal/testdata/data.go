package testdata

// Notes are not in time order, the way the editor can leave them after a
// drag and drop.
const data = `{
  "song": "songs/tutorial.ogg",
  "bpm": 120,
  "editorVersion": 2,
  "notes": [
    {"time": 1.0, "direction": "left"},
    {"time": 3.0, "direction": "up"},
    {"time": 1.5, "direction": "down"},
    {"time": 2.5, "direction": "right"},
    {"time": 2.0, "direction": "left"},
    {"time": 1.08, "direction": "left"},
    {"time": 4.0, "direction": "right"}
  ]
}`

// StepMania is a small .sm file with a BPM change, one dance-single
// difficulty and one difficulty for an unsupported layout.
const StepMania = `#TITLE:Tutorial;
#ARTIST:Nobody;
#MUSIC:tutorial.ogg;
#OFFSET:-0.500;
#BPMS:0.000=120.000,
4.000=60.000;
#STOPS:;

//---------------dance-single - ----------------
#NOTES:
     dance-single:
     Someone:
     Easy:
     2:
     0.1,0.1,0,0,0:
1000
0100
0010
0001
,  // measure 1
1001
0000
M000
0000
;
#NOTES:
     pump-single:
     Someone:
     Hard:
     9:
     0,0,0,0,0:
10000
00000
00000
00000
;
`
